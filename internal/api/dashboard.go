package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	recipeService service.IRecipeService
	menuService   service.IMenuService
	ledger        service.CreditLedger
	logger        *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(recipeService service.IRecipeService, menuService service.IMenuService, ledger service.CreditLedger, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		recipeService: recipeService,
		menuService:   menuService,
		ledger:        ledger,
		logger:        logger,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	dashboard := router.Group("/dashboard", requireAuth)
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/favorites/recent", h.GetRecentFavorites)
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	RecipesSaved       int64  `json:"recipesSaved"`
	GenerationsMonth   int64  `json:"generationsThisMonth"`
	Credits            *int64 `json:"credits"`
	CreditsUnavailable bool   `json:"creditsUnavailable,omitempty"`
}

// GetStats returns dashboard statistics for the current user
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var stats DashboardStats
	_, total, err := h.recipeService.ListUserRecipes(ctx, userID, 1, 1)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	stats.RecipesSaved = total

	if stats.GenerationsMonth, err = h.menuService.MonthlyGenerationCount(ctx, userID, time.Now()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if balance, err := h.ledger.RemainingCredits(ctx, userID); err == nil {
		stats.Credits = &balance
	} else {
		h.logger.Warn("balance unavailable for dashboard", zap.Error(err))
		stats.CreditsUnavailable = true
	}
	c.JSON(http.StatusOK, stats)
}

// GetRecentFavorites returns the five most recent favorites.
func (h *DashboardHandler) GetRecentFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipeService.ListFavorites(c.Request.Context(), userID, 1, 5)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	views := localizeAll(recipes, requestLocale(c))
	for i := range views {
		views[i].IsFavorited = true
	}
	c.JSON(http.StatusOK, views)
}
