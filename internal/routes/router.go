package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wastemanage/internal/config"
	"wastemanage/internal/delivery/http/handler"
	"wastemanage/internal/infrastructure/database/postgres"
	"wastemanage/internal/logger"
	"wastemanage/internal/mailer"
	"wastemanage/internal/middleware"
	usecaseAdmin "wastemanage/internal/usecase/admin"
	usecasePickup "wastemanage/internal/usecase/pickup"
	usecaseUser "wastemanage/internal/usecase/user"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	userRepository := postgres.NewUserRepository(db)
	adminRepository := postgres.NewAdminRepository(db)
	pickupRepository := postgres.NewPickupRepository(db)

	mail := mailer.NewSMTPMailer(cfg.SMTP)

	userService := usecaseUser.NewService(userRepository, mail, cfg)
	adminService := usecaseAdmin.NewService(adminRepository, cfg)
	pickupService := usecasePickup.NewService(pickupRepository)

	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	pickupHandler := handler.NewPickupHandler(pickupService)

	auth := middleware.AuthMiddleware(cfg, userRepository, adminRepository)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			if err := db.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database connection failed",
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"message": "Service is running",
			})
		})

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/forgot-password", userHandler.ForgotPassword)
			users.POST("/reset-password", userHandler.ResetPassword)

			profile := users.Group("")
			profile.Use(auth, middleware.UserOnly())
			{
				profile.GET("/profile", userHandler.GetProfile)
				profile.PUT("/profile", userHandler.UpdateProfile)
				profile.POST("/change-password", userHandler.ChangePassword)
			}

			users.GET("/count", auth, middleware.AdminOnly(), userHandler.Count)
		}

		admins := api.Group("/admin")
		{
			admins.POST("/login", adminHandler.Login)
			admins.POST("/reset-password", auth, middleware.AdminOnly(), adminHandler.ResetPassword)
		}

		pickups := api.Group("/pickup-requests")
		pickups.Use(auth)
		{
			user := pickups.Group("")
			user.Use(middleware.UserOnly())
			{
				user.POST("", pickupHandler.Create)
				user.GET("/my-requests", pickupHandler.ListMine)
			}

			admin := pickups.Group("")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("", pickupHandler.ListAll)
				admin.GET("/statistics", pickupHandler.Statistics)
				admin.GET("/routes", pickupHandler.Routes)
				admin.GET("/:id", pickupHandler.Get)
				admin.PUT("/:id", pickupHandler.Update)
				admin.DELETE("/:id", pickupHandler.Delete)
				admin.PATCH("/:id/status", pickupHandler.UpdateStatus)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
