package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	logger          *zap.Logger
}

func NewFeedbackHandler(feedbackService service.IFeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, logger: logger}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	router.POST("/feedback", optionalAuth, h.CreateFeedback)
	router.GET("/recipes/:id/feedback", h.Stats)
}

// CreateFeedback records a rating. Anonymous feedback is accepted.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) Stats(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.feedbackService.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
