package controllers

import (
	"strconv"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	Svc *services.RatingService
}

func NewRatingController(svc *services.RatingService) *RatingController {
	return &RatingController{Svc: svc}
}

type CreateRatingReq struct {
	OrderID      uint     `json:"orderId" binding:"required"`
	Rating       int      `json:"rating" binding:"required,min=1,max=5"`
	Comment      string   `json:"comment"`
	ImagesBase64 []string `json:"imagesBase64"`
}

// POST /ratings
func (ctl *RatingController) Create(c *gin.Context) {
	var req CreateRatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rt, err := ctl.Svc.Create(utils.CurrentUserID(c), &services.CreateRatingIn{
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		ImagesBase64: req.ImagesBase64,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.Created(c, rt)
}

// GET /stores/:id/ratings
func (ctl *RatingController) ListForStore(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := ctl.Svc.ListForStore(uint(storeID), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
