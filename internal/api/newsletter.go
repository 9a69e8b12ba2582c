package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

type NewsletterHandler struct {
	subscriptions service.ISubscriptionService
	logger        *zap.Logger
}

func NewNewsletterHandler(subscriptions service.ISubscriptionService, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{subscriptions: subscriptions, logger: logger}
}

func (h *NewsletterHandler) RegisterRoutes(router *gin.RouterGroup) {
	newsletter := router.Group("/newsletter")
	{
		newsletter.POST("/subscribe", h.Subscribe)
		newsletter.POST("/unsubscribe", h.Unsubscribe)
	}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req types.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}
	loc := requestLocale(c)
	if req.Locale != "" {
		loc = units.ParseLocale(req.Locale)
	}
	sub, err := h.subscriptions.Subscribe(c.Request.Context(), req.Email, loc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": true, "email": sub.Email, "locale": sub.Locale})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req types.UnsubscribeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.subscriptions.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": false})
}
