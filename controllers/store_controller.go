package controllers

import (
	"strconv"

	"quickbite/entity"
	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type StoreController struct {
	Svc *services.StoreService
}

func NewStoreController(svc *services.StoreService) *StoreController {
	return &StoreController{Svc: svc}
}

// GET /stores?search=&category=
func (ctl *StoreController) List(c *gin.Context) {
	items, err := ctl.Svc.List(c.Query("search"), c.Query("category"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /stores/:id
func (ctl *StoreController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	detail, err := ctl.Svc.Detail(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, detail)
}

type UpdateStoreReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PromptPayID *string `json:"promptPayId"`
}

// PATCH /partner/stores/:id
func (ctl *StoreController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req UpdateStoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	store, err := ctl.Svc.Update(uint(id), utils.CurrentUserID(c), utils.CurrentRole(c), &services.UpdateStoreIn{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PromptPayID: req.PromptPayID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, store)
}

type SetSlotsReq struct {
	Slots []entity.PickupSlot `json:"slots" binding:"required,dive"`
}

// PUT /partner/stores/:id/slots
func (ctl *StoreController) SetSlots(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req SetSlotsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	store, err := ctl.Svc.SetSlots(uint(id), utils.CurrentUserID(c), utils.CurrentRole(c), req.Slots)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	slots, _ := store.Slots()
	resp.OK(c, gin.H{"storeId": store.ID, "slots": slots})
}

type UploadImageReq struct {
	Kind        string `json:"kind" binding:"required,oneof=banner logo"`
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// POST /partner/stores/:id/images
func (ctl *StoreController) UploadImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req UploadImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	store, err := ctl.Svc.UploadImage(uint(id), utils.CurrentUserID(c), utils.CurrentRole(c), req.Kind, req.ImageBase64)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, store)
}

// POST /partner/stores/:id/qr
func (ctl *StoreController) RegenerateQR(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	store, err := ctl.Svc.RegenerateQR(uint(id), utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"storeId": store.ID, "qrUrl": store.QRURL})
}

// GET /partner/stores/:id/dashboard
func (ctl *StoreController) Dashboard(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	d, err := ctl.Svc.Dashboard(uint(id), utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, d)
}
