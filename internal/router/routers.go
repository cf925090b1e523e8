package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/config"
	"github.com/hexanode/accounts/internal/handler"
	"github.com/hexanode/accounts/internal/middleware"
)

type Router struct {
	userHandler   *handler.UserHandler
	authHandler   *handler.AuthHandler
	healthHandler *handler.HealthHandler

	jwtMw  *middleware.JWTMiddleware
	config *config.Config
}

func NewRouter(
	user *handler.UserHandler,
	auth *handler.AuthHandler,
	health *handler.HealthHandler,
	jwtMw *middleware.JWTMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userHandler:   user,
		authHandler:   auth,
		healthHandler: health,
		jwtMw:         jwtMw,
		config:        cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS(r.config.CORS.FrontendOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/full", r.healthHandler.HealthCheck)

		api.Use(middleware.RateLimit(r.config.RateLimit.Request, time.Duration(r.config.RateLimit.Duration)*time.Second))

		r.authRoutes(api)
		r.userRoutes(api)
	}

	return router
}
