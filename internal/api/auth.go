package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
	ledger      service.CreditLedger
	logger      *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, ledger service.CreditLedger, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, ledger: ledger, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", requireAuth, h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   result.Token,
		"user":    result.User,
		"credits": result.Credits,
		"welcome": result.Welcome,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: result.Token, User: result.User, Credits: result.Credits})
}

// Me returns the current user with their balance. The balance is omitted
// when the ledger is unavailable.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := gin.H{"user": user}
	if h.ledger != nil {
		if balance, err := h.ledger.RemainingCredits(c.Request.Context(), userID); err == nil {
			resp["credits"] = balance
		} else {
			h.logger.Warn("balance unavailable", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, resp)
}
