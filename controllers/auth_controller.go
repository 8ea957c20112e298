package controllers

import (
	"net/http"

	"quickbite/configs"
	"quickbite/entity"
	"quickbite/pkg/metrics"
	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AuthController struct {
	Auth  *services.AuthService
	Staff *services.StaffService
	Cfg   *configs.Config
}

func NewAuthController(auth *services.AuthService, staff *services.StaffService, cfg *configs.Config) *AuthController {
	return &AuthController{Auth: auth, Staff: staff, Cfg: cfg}
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "firstName": u.FirstName,
		"lastName": u.LastName, "role": u.Role, "storeId": u.StoreID,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(&services.RegisterIn{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "token": token, "user": userJSON(user)})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Login(req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("login", "failure").Inc()
		respondServiceError(c, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("login", "success").Inc()

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userJSON(user)})
}

// POST /auth/staff-login — the secondary path gated on ApprovedStaff
func (a *AuthController) StaffLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Staff.Login(req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("staff-login", "failure").Inc()
		respondServiceError(c, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("staff-login", "success").Inc()

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userJSON(user)})
}

// POST /functions/check-email-exists
func (a *AuthController) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	check, err := a.Auth.CheckEmail(req.Email)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, check)
}

// GET /auth/me (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.Users.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.BadRequest(c, "user not found")
		return
	}
	resp.OK(c, userJSON(user))
}
