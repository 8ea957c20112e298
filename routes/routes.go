package routes

import (
	"net/http"

	"quickbite/configs"
	"quickbite/controllers"
	"quickbite/entity"
	"quickbite/middlewares"
	"quickbite/pkg/mailer"
	"quickbite/services"
	"quickbite/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	m := mailer.New(cfg.MailAPIKey, cfg.MailEndpoint, cfg.MailFrom)

	// Services
	authSvc := services.NewAuthService(db, m, cfg.AdminEmails)
	staffSvc := services.NewStaffService(db)
	appSvc := services.NewApplicationService(db, m)
	storeSvc := services.NewStoreService(db, cfg.UploadDir)
	mealSvc := services.NewMealService(db, cfg.UploadDir)
	orderSvc := services.NewOrderService(db, cfg.UploadDir)
	ratingSvc := services.NewRatingService(db, cfg.UploadDir)
	chatSvc := services.NewChatService(db)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, staffSvc, cfg)
	appCtrl := controllers.NewApplicationController(appSvc)
	adminCtrl := controllers.NewAdminController(db, authSvc, staffSvc)
	storeCtrl := controllers.NewStoreController(storeSvc)
	mealCtrl := controllers.NewMealController(mealSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	storeOrderCtrl := controllers.NewStoreOrderController(orderSvc)
	ratingCtrl := controllers.NewRatingController(ratingSvc)
	chatCtrl := controllers.NewChatController(chatSvc)

	// Diagnostics
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authLimit := middlewares.RateLimitMiddleware(rate.Limit(1), 5)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authLimit, authCtrl.Register)
		a.POST("/login", authLimit, authCtrl.Login)
		a.POST("/staff-login", authLimit, authCtrl.StaffLogin)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
	}

	// The privileged function surface, kept under its historical prefix.
	fn := r.Group("/functions")
	{
		fn.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		fn.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		fn.POST("/check-email-exists", authCtrl.CheckEmail)
		fn.POST("/register", authLimit, authCtrl.Register)
		fn.POST("/login-approved-staff", authLimit, authCtrl.StaffLogin)
		fn.POST("/submit-merchant-app", appCtrl.Submit)
		fn.POST("/confirm-admin", authLimit, adminCtrl.ConfirmAdmin)

		fnAdmin := fn.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
		{
			fnAdmin.POST("/provision-staff", adminCtrl.ProvisionStaff)
			fnAdmin.POST("/delete-approved-staff", adminCtrl.DeleteApprovedStaff)
			fnAdmin.POST("/send-approval-email/:id", appCtrl.SendApprovalEmail)
			fnAdmin.POST("/send-rejection-email/:id", appCtrl.SendRejectionEmail)
		}
	}

	// Public/Student
	r.GET("/stores", storeCtrl.List)
	r.GET("/stores/:id", storeCtrl.Detail)
	r.GET("/stores/:id/ratings", ratingCtrl.ListForStore)

	// ยื่นสมัครเปิดร้าน (public — ผู้สมัครยังไม่มีบัญชี)
	r.POST("/merchant-applications", appCtrl.Submit)

	// Orders (student)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.POST("/orders/:id/payment-proof", orderCtrl.SubmitPaymentProof)
		u.PATCH("/orders/:id/cancel", orderCtrl.Cancel)
		u.POST("/ratings", ratingCtrl.Create)

		u.GET("/chat/rooms", chatCtrl.MyRooms)
		u.GET("/chat/rooms/:id/messages", chatCtrl.Messages)
		u.POST("/chat/rooms/:id/messages", chatCtrl.Send)
	}

	// Profile
	profile := r.Group("/profile", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		profile.GET("/orders", orderCtrl.ListForMe)
	}

	// Partner (staff/admin)
	partner := r.Group("/partner", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleStaff, entity.RoleAdmin))
	{
		partner.GET("/stores/:id/dashboard", storeCtrl.Dashboard)
		partner.PATCH("/stores/:id", storeCtrl.Update)
		partner.PUT("/stores/:id/slots", storeCtrl.SetSlots)
		partner.POST("/stores/:id/images", storeCtrl.UploadImage)
		partner.POST("/stores/:id/qr", storeCtrl.RegenerateQR)

		partner.GET("/stores/:id/meals", mealCtrl.ListForOwner)
		partner.POST("/stores/:id/meals", mealCtrl.Create)
		partner.PATCH("/meals/:id", mealCtrl.Update)
		partner.DELETE("/meals/:id", mealCtrl.Delete)

		partner.GET("/stores/:id/orders", storeOrderCtrl.List)
		partner.GET("/stores/:id/orders/:oid", storeOrderCtrl.Detail)
		partner.PATCH("/orders/:id/status", storeOrderCtrl.Advance)
		partner.PATCH("/orders/:id/cancel", storeOrderCtrl.Cancel)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/users", adminCtrl.Users)
		admin.POST("/accounts/delete", adminCtrl.DeleteAccount)

		admin.GET("/merchant-applications", appCtrl.List) // ?status=pending
		admin.PATCH("/merchant-applications/:id/approve", appCtrl.Approve)
		admin.PATCH("/merchant-applications/:id/reject", appCtrl.Reject)
	}

	// WebSocket chat
	hub := ws.NewChatHub(chatSvc)
	go hub.Run()
	r.GET("/ws/chat/:roomId", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
