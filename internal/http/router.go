package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/dto"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			log.WithError(err).Error("Failed to register request validations")
		}
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware(log))
	router.Use(RecoveryMiddleware(log))
	router.Use(CORSMiddleware(cfg.AllowOrigins))

	health := NewHealthController(cfg.Database, cfg.Tasks, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api", UnitOfWorkMiddleware(cfg.UnitOfWork, log))

	NewUsersController(cfg.Users, cfg.Recorder, log).RegisterRoutes(api)
	NewAuthorsController(cfg.Authors, cfg.Recorder, log).RegisterRoutes(api)
	NewBooksController(cfg.Books, cfg.Chapters, cfg.Reviews, cfg.Recorder, log).RegisterRoutes(api)
	NewChaptersController(cfg.Chapters, cfg.Recorder, log).RegisterRoutes(api)
	NewReviewsController(cfg.Reviews, cfg.Recorder, log).RegisterRoutes(api)

	if cfg.Events != nil {
		auditController := NewAuditController(cfg.Events, log)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	return router
}
