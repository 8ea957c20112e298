// controllers/store_order_controller.go
package controllers

import (
	"strconv"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

// StoreOrderController is the staff-facing side of orders.
type StoreOrderController struct {
	Svc *services.OrderService
}

func NewStoreOrderController(svc *services.OrderService) *StoreOrderController {
	return &StoreOrderController{Svc: svc}
}

// GET /partner/stores/:id/orders?status=&page=&limit=
func (ctl *StoreOrderController) List(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ctl.Svc.ListForStore(utils.CurrentUserID(c), utils.CurrentRole(c),
		uint(storeID), c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /partner/stores/:id/orders/:oid
func (ctl *StoreOrderController) Detail(c *gin.Context) {
	storeID, _ := strconv.Atoi(c.Param("id"))
	orderID, _ := strconv.Atoi(c.Param("oid"))

	detail, err := ctl.Svc.DetailForStore(utils.CurrentUserID(c), utils.CurrentRole(c),
		uint(storeID), uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, detail)
}

type AdvanceReq struct {
	Status string `json:"status" binding:"required,oneof=payment_submitted confirmed ready claimed"`
}

// PATCH /partner/orders/:id/status — เดินหน้าได้ทีละขั้นเท่านั้น
func (ctl *StoreOrderController) Advance(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	var req AdvanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := ctl.Svc.Advance(utils.CurrentUserID(c), utils.CurrentRole(c), uint(orderID), req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": orderID, "status": req.Status})
}

// PATCH /partner/orders/:id/cancel
func (ctl *StoreOrderController) Cancel(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.Cancel(utils.CurrentUserID(c), utils.CurrentRole(c), uint(orderID)); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}
