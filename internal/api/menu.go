package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

// MenuHandler serves BBQ menu generation.
type MenuHandler struct {
	menuService service.IMenuService
	authService service.IAuthService
	limiter     *middleware.RateLimiter
	logger      *zap.Logger
}

func NewMenuHandler(menuService service.IMenuService, authService service.IAuthService, limiter *middleware.RateLimiter, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{menuService: menuService, authService: authService, limiter: limiter, logger: logger}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	bbq := router.Group("/bbq", requireAuth)
	{
		if h.limiter != nil {
			bbq.POST("/generate-menu", h.limiter.RateLimitMiddleware(), h.GenerateMenu)
		} else {
			bbq.POST("/generate-menu", h.GenerateMenu)
		}
		bbq.GET("/generations/monthly", h.MonthlyCount)
	}
	if h.limiter != nil {
		router.GET("/rate-limits/menu-generation", requireAuth, h.RateLimitStatus)
	}
}

// GenerateMenu charges one generation and returns the localized menu.
// Insufficient credits answer 402 before the model is called.
func (h *MenuHandler) GenerateMenu(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.GenerateMenuRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Language == "" {
		req.Language = string(requestLocale(c))
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.menuService.GenerateMenu(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MenuHandler) MonthlyCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := h.menuService.MonthlyGenerationCount(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *MenuHandler) RateLimitStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	remaining, resetTime, err := h.limiter.Remaining(c.Request.Context(), userID.String())
	if err != nil {
		h.logger.Warn("failed to check rate limit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
		return
	}
	limit, window := h.limiter.Limits()
	c.JSON(http.StatusOK, gin.H{
		"limit":      limit,
		"remaining":  remaining,
		"reset_time": resetTime.Unix(),
		"window":     window.String(),
	})
}
