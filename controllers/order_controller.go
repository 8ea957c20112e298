package controllers

import (
	"strconv"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

// POST /orders
func (ctl *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /profile/orders
func (ctl *OrderController) ListForMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Svc.ListForStudent(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (ctl *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	detail, err := ctl.Svc.DetailForStudent(utils.CurrentUserID(c), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, detail)
}

type PaymentProofReq struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// POST /orders/:id/payment-proof
func (ctl *OrderController) SubmitPaymentProof(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req PaymentProofReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := ctl.Svc.SubmitPaymentProof(utils.CurrentUserID(c), uint(id), req.ImageBase64)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/cancel — นักศึกษายกเลิกได้ก่อนร้านยืนยันเท่านั้น
func (ctl *OrderController) Cancel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.Cancel(utils.CurrentUserID(c), utils.CurrentRole(c), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
