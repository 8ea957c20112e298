// controllers/application_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"quickbite/entity"
	"quickbite/pkg/resp"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	Svc *services.ApplicationService
}

func NewApplicationController(svc *services.ApplicationService) *ApplicationController {
	return &ApplicationController{Svc: svc}
}

// ====== Request DTO ======
type SubmitApplicationReq struct {
	Email       string `json:"email" binding:"required,email"`
	StoreName   string `json:"storeName" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// optional — stages the staff password at application time
	Password string `json:"password" binding:"omitempty,min=6"`
}

type ApproveReq struct {
	// optional when a password was staged at application time
	Password string `json:"password" binding:"omitempty,min=6"`
}

type RejectReq struct {
	Reason string `json:"reason" binding:"required"`
}

// ====== Response DTO ======
type ApplicationResponse struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	StoreName   string  `json:"storeName"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submittedAt"`
	ReviewedAt  *string `json:"reviewedAt,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

func applicationJSON(app *entity.MerchantApplication) ApplicationResponse {
	out := ApplicationResponse{
		ID:          app.ID,
		Email:       app.Email,
		StoreName:   app.StoreName,
		Description: app.Description,
		Category:    app.Category,
		Status:      app.Status,
		SubmittedAt: app.CreatedAt.Format(time.RFC3339),
		Reason:      app.RejectReason,
	}
	if app.ReviewedAt != nil {
		v := app.ReviewedAt.Format(time.RFC3339)
		out.ReviewedAt = &v
	}
	return out
}

// ====== สมัครเปิดร้าน (public — ผู้สมัครยังไม่มีบัญชี) ======
func (ctl *ApplicationController) Submit(c *gin.Context) {
	var req SubmitApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	app, err := ctl.Svc.Submit(&services.SubmitApplicationIn{
		Email:       req.Email,
		StoreName:   req.StoreName,
		Description: req.Description,
		Category:    req.Category,
		Password:    req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"id": app.ID, "status": app.Status}})
}

// ====== Admin ดูรายการ ======
func (ctl *ApplicationController) List(c *gin.Context) {
	status := c.DefaultQuery("status", entity.AppPending)

	apps, err := ctl.Svc.List(status)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	items := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, applicationJSON(&apps[i]))
	}
	resp.OK(c, gin.H{"items": items})
}

// ====== Admin อนุมัติ ======
func (ctl *ApplicationController) Approve(c *gin.Context) {
	appID, _ := strconv.Atoi(c.Param("id"))

	var req ApproveReq
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Svc.Approve(uint(appID), req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

// ====== Admin ปฏิเสธ ======
func (ctl *ApplicationController) Reject(c *gin.Context) {
	appID, _ := strconv.Atoi(c.Param("id"))

	var req RejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	app, err := ctl.Svc.Reject(uint(appID), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, applicationJSON(app))
}

// POST /functions/send-approval-email — re-send, errors surface here (unlike
// the swallowed send inside approve)
func (ctl *ApplicationController) SendApprovalEmail(c *gin.Context) {
	appID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.ResendApproval(uint(appID)); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

// POST /functions/send-rejection-email
func (ctl *ApplicationController) SendRejectionEmail(c *gin.Context) {
	appID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Svc.ResendRejection(uint(appID)); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}
