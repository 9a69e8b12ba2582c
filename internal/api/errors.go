package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var insufficient *credits.InsufficientCreditsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "insufficient credits",
			"required":  insufficient.Requested,
			"remaining": insufficient.Available,
		})
	case errors.Is(err, credits.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credits"})
	case errors.Is(err, credits.ErrLedgerUnavailable):
		logger.Error("credit ledger unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "credit service temporarily unavailable"})
	case errors.Is(err, credits.ErrInvalidAmount),
		errors.Is(err, units.ErrNegativeAmount),
		errors.Is(err, units.ErrUnrecognizedUnit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrAlreadyFavorited):
		c.JSON(http.StatusConflict, gin.H{"error": "recipe already favorited"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, service.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "menu generation failed, please try again", "refunded": true})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
