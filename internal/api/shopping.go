package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

type ShoppingHandler struct {
	shoppingService service.IShoppingService
	logger          *zap.Logger
}

func NewShoppingHandler(shoppingService service.IShoppingService, logger *zap.Logger) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService, logger: logger}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	shopping := router.Group("/shopping-list", requireAuth)
	{
		shopping.GET("", h.List)
		shopping.DELETE("", h.Clear)
		shopping.POST("/items", h.AddItems)
		shopping.PATCH("/items/:id", h.UpdateItem)
		shopping.DELETE("/items/:id", h.RemoveItem)
		shopping.POST("/recipes/:id", h.AddRecipe)
	}
}

func (h *ShoppingHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.shoppingService.List(c.Request.Context(), userID, requestLocale(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ShoppingHandler) AddItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.AddShoppingItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	items, err := h.shoppingService.AddItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

// AddRecipe copies a recipe's ingredients onto the list.
func (h *ShoppingHandler) AddRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.shoppingService.AddRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *ShoppingHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateShoppingItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.shoppingService.SetBought(c.Request.Context(), userID, itemID, *req.Bought)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.shoppingService.Remove(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear removes every item, or only bought ones with ?bought=true.
func (h *ShoppingHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boughtOnly, _ := strconv.ParseBool(c.Query("bought"))
	n, err := h.shoppingService.Clear(c.Request.Context(), userID, boughtOnly)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}
