package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/equipo46/horarios-api/internal/handler"
	"github.com/equipo46/horarios-api/internal/middleware"
	"github.com/equipo46/horarios-api/internal/service"
	"github.com/equipo46/horarios-api/pkg/config"
	"github.com/equipo46/horarios-api/pkg/logger"
	corsmiddleware "github.com/equipo46/horarios-api/pkg/middleware/cors"
	reqidmiddleware "github.com/equipo46/horarios-api/pkg/middleware/requestid"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Subject *handler.SubjectHandler
	System  *handler.SystemHandler
	Metrics *handler.MetricsHandler
}

// Setup configures the Gin engine: global middleware, public routes, and
// the token-gated subject group.
func Setup(cfg *config.Config, logr *zap.Logger, handlers *Handlers, metricsSvc *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.RequireJSON())

	root := r.Group(cfg.APIPrefix)

	root.GET("/", handlers.System.Root)
	root.GET("/health", handlers.System.Health)
	root.GET("/metrics", handlers.Metrics.Prometheus)

	root.POST("/auth/login", handlers.Auth.Login)

	subjects := root.Group("/subjects")
	subjects.Use(middleware.UserToken())
	{
		subjects.GET("", handlers.Subject.List)
		subjects.POST("", handlers.Subject.Create)
		subjects.GET("/:id", handlers.Subject.Get)
		subjects.PUT("/:id", handlers.Subject.Update)
		subjects.DELETE("/:id", handlers.Subject.Delete)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
