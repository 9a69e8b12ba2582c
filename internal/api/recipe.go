package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

// RecipeHandler serves saved recipes, favorites and view history.
type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, logger: logger}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", requireAuth, h.ListRecipes)
		recipes.GET("/search", requireAuth, h.SearchRecipes)
		recipes.GET("/:id", optionalAuth, h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.DELETE("/:id", requireAuth, h.ArchiveRecipe)
	}
	favorites := router.Group("/favorites", requireAuth)
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:id", h.RemoveFavorite)
	}
	history := router.Group("/history", requireAuth)
	{
		history.GET("", h.ListHistory)
		history.POST("", h.RecordView)
	}
}

func localizeAll(recipes []models.BBQRecipe, loc units.Locale) []service.RecipeView {
	views := make([]service.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, service.LocalizeRecipe(&recipes[i], loc))
	}
	return views
}

// GetRecipe returns the recipe localized for the request. Authenticated
// views are recorded in the user's history.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	view := service.LocalizeRecipe(recipe, requestLocale(c))
	if userID, ok := middleware.UserID(c); ok {
		if fav, err := h.recipeService.IsFavorited(c.Request.Context(), userID, id); err == nil {
			view.IsFavorited = fav
		}
		if err := h.recipeService.RecordView(c.Request.Context(), userID, id); err != nil {
			h.logger.Warn("failed to record recipe view", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := queryInt(c, "page", 1), queryInt(c, "limit", 20)
	recipes, total, err := h.recipeService.ListUserRecipes(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": localizeAll(recipes, requestLocale(c)), "total": total, "page": page})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), userID, q, queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": localizeAll(recipes, requestLocale(c))})
}

func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	recipes, err := h.recipeService.SimilarRecipes(c.Request.Context(), id, queryInt(c, "limit", 4))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": localizeAll(recipes, requestLocale(c))})
}

func (h *RecipeHandler) ArchiveRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.ArchiveRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipeService.ListFavorites(c.Request.Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	views := localizeAll(recipes, requestLocale(c))
	for i := range views {
		views[i].IsFavorited = true
	}
	c.JSON(http.StatusOK, gin.H{"favorites": views})
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.recipeService.AddFavorite(c.Request.Context(), userID, req.RecipeID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipeId": req.RecipeID, "isFavorited": true})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.recipeService.ListHistory(c.Request.Context(), userID, queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	loc := requestLocale(c)
	type historyView struct {
		RecipeID string              `json:"recipeId"`
		ViewedAt string              `json:"viewedAt"`
		Recipe   *service.RecipeView `json:"recipe,omitempty"`
	}
	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		hv := historyView{RecipeID: e.RecipeID.String(), ViewedAt: e.ViewedAt.UTC().Format(time.RFC3339)}
		if e.Recipe != nil {
			v := service.LocalizeRecipe(e.Recipe, loc)
			hv.Recipe = &v
		}
		out = append(out, hv)
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func (h *RecipeHandler) RecordView(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.HistoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.recipeService.RecordView(c.Request.Context(), userID, req.RecipeID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
