package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"submission-portal/internal/config"
	"submission-portal/internal/delivery/http/handler"
	"submission-portal/internal/infrastructure/database/postgres"
	"submission-portal/internal/logger"
	"submission-portal/internal/middleware"
	submissionUsecase "submission-portal/internal/usecase/submission"
	userUsecase "submission-portal/internal/usecase/user"
	"submission-portal/pkg/filestore"
	"submission-portal/pkg/mailer"
	"submission-portal/pkg/utils"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, store filestore.Store) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterGinValidators()

	router := gin.New()

	maxRequestSize := cfg.Upload.MaxSizeMB << 20
	if maxRequestSize <= 0 {
		maxRequestSize = middleware.DefaultMaxRequestSize
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(maxRequestSize))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
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

	userRepository := postgres.NewUserRepository(db)
	resetMailer := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	userService := userUsecase.NewService(userRepository, resetMailer, cfg.JWT, cfg.App)
	userHandler := handler.NewUserHandler(userService)

	submissionRepository := postgres.NewSubmissionRepository(db)
	submissionService := submissionUsecase.NewService(submissionRepository, store)
	submissionHandler := handler.NewSubmissionHandler(submissionService)

	auth := middleware.AuthMiddleware(cfg)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1, auth)
		submissionHandler.RegisterRoutes(v1, auth)
	}

	logger.Info("All routes initialized")
	return router
}
