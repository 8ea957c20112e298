package controllers

import (
	"quickbite/entity"
	"quickbite/pkg/resp"
	"quickbite/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB    *gorm.DB
	Auth  *services.AuthService
	Staff *services.StaffService
}

func NewAdminController(db *gorm.DB, auth *services.AuthService, staff *services.StaffService) *AdminController {
	return &AdminController{DB: db, Auth: auth, Staff: staff}
}

type ConfirmAdminReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /functions/confirm-admin — allow-listed emails only, so this endpoint
// stays public like the original function
func (ctl *AdminController) ConfirmAdmin(c *gin.Context) {
	var req ConfirmAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.Auth.ConfirmAdmin(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}

type ProvisionStaffReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /functions/provision-staff
func (ctl *AdminController) ProvisionStaff(c *gin.Context) {
	var req ProvisionStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Staff.Provision(req.Email, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"email": req.Email, "provisioned": true})
}

type EmailReq struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /functions/delete-approved-staff
func (ctl *AdminController) DeleteApprovedStaff(c *gin.Context) {
	var req EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Staff.DeleteApproved(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"email": req.Email, "deleted": true})
}

// POST /admin/accounts/delete — cascading removal of an email
func (ctl *AdminController) DeleteAccount(c *gin.Context) {
	var req EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Auth.DeleteAccountCascade(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"email": req.Email, "deleted": true})
}

// GET /admin/dashboard
func (ctl *AdminController) Dashboard(c *gin.Context) {
	var users, stores, orders, pendingApps int64

	if err := ctl.DB.Model(&entity.User{}).Count(&users).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.DB.Model(&entity.Store{}).Count(&stores).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.DB.Model(&entity.Order{}).Count(&orders).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if err := ctl.DB.Model(&entity.MerchantApplication{}).
		Where("status = ?", entity.AppPending).Count(&pendingApps).Error; err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"users": users, "stores": stores, "orders": orders, "pendingApplications": pendingApps,
	})
}

// GET /admin/users
func (ctl *AdminController) Users(c *gin.Context) {
	var users []entity.User
	if err := ctl.DB.Order("id").Find(&users).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": users})
}
