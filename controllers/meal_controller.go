package controllers

import (
	"strconv"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Svc *services.MealService
}

func NewMealController(svc *services.MealService) *MealController {
	return &MealController{Svc: svc}
}

type MealReq struct {
	Name        string `json:"name"`
	Detail      string `json:"detail"`
	Price       int64  `json:"price"`
	Available   *bool  `json:"available"`
	ImageBase64 string `json:"imageBase64"`
}

// POST /partner/stores/:id/meals
func (ctl *MealController) Create(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	var req MealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Name == "" || req.Price <= 0 {
		resp.BadRequest(c, "name and positive price are required")
		return
	}

	meal, err := ctl.Svc.Create(uint(storeID), utils.CurrentUserID(c), utils.CurrentRole(c), &services.MealIn{
		Name: req.Name, Detail: req.Detail, Price: req.Price,
		Available: req.Available, ImageBase64: req.ImageBase64,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.Created(c, meal)
}

// PATCH /partner/meals/:id
func (ctl *MealController) Update(c *gin.Context) {
	mealID, _ := strconv.Atoi(c.Param("id"))
	var req MealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	meal, err := ctl.Svc.Update(uint(mealID), utils.CurrentUserID(c), utils.CurrentRole(c), &services.MealIn{
		Name: req.Name, Detail: req.Detail, Price: req.Price,
		Available: req.Available, ImageBase64: req.ImageBase64,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, meal)
}

// DELETE /partner/meals/:id
func (ctl *MealController) Delete(c *gin.Context) {
	mealID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.Delete(uint(mealID), utils.CurrentUserID(c), utils.CurrentRole(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// GET /partner/stores/:id/meals — รวมเมนูที่ปิดขายด้วย
func (ctl *MealController) ListForOwner(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	meals, err := ctl.Svc.ListForOwner(uint(storeID), utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": meals})
}
