package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	Auth          service.IAuthService
	Ledger        service.CreditLedger
	Menu          service.IMenuService
	Recipes       service.IRecipeService
	Shopping      service.IShoppingService
	Feedback      service.IFeedbackService
	Subscriptions service.ISubscriptionService
	Images        *images.Catalog
	// GenerateLimiter is optional.
	GenerateLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "BBQ Menu AI API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Images == nil {
		deps.Images = images.Default()
	}
	var maxGrant int64
	isAdmin := func(string) bool { return false }
	if deps.Config != nil {
		maxGrant = deps.Config.MaxAdminGrant
		isAdmin = deps.Config.IsAdmin
	}

	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	requireAuth := middleware.AuthMiddleware(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth)

	v1 := router.Group("/api/v1")
	NewAuthHandler(deps.Auth, deps.Ledger, deps.Logger).RegisterRoutes(v1, requireAuth)
	NewCreditsHandler(deps.Ledger, deps.Auth, maxGrant, deps.Logger).RegisterRoutes(v1, requireAuth, middleware.AdminOnly(isAdmin))
	NewMenuHandler(deps.Menu, deps.Auth, deps.GenerateLimiter, deps.Logger).RegisterRoutes(v1, requireAuth)
	NewRecipeHandler(deps.Recipes, deps.Logger).RegisterRoutes(v1, requireAuth, optionalAuth)
	NewShoppingHandler(deps.Shopping, deps.Logger).RegisterRoutes(v1, requireAuth)
	NewFeedbackHandler(deps.Feedback, deps.Logger).RegisterRoutes(v1, optionalAuth)
	NewNewsletterHandler(deps.Subscriptions, deps.Logger).RegisterRoutes(v1)
	NewImageHandler(deps.Images).RegisterRoutes(v1)
	NewUnitsHandler().RegisterRoutes(v1)
	NewDashboardHandler(deps.Recipes, deps.Menu, deps.Ledger, deps.Logger).RegisterRoutes(v1, requireAuth)
}

// requestLocale resolves the display locale from ?locale=, then
// Accept-Language, then the default.
func requestLocale(c *gin.Context) units.Locale {
	if l := c.Query("locale"); l != "" {
		return units.ParseLocale(l)
	}
	if header := c.GetHeader("Accept-Language"); header != "" {
		first := strings.SplitN(header, ",", 2)[0]
		return units.ParseLocale(strings.SplitN(first, ";", 2)[0])
	}
	return units.DefaultLocale
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) int {
	if v, err := strconv.Atoi(c.Query(name)); err == nil {
		return v
	}
	return def
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return false
	}
	return true
}
