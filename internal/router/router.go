package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/api"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(corsOrigins []string, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, deps)

	return router
}
