package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

// DefaultMaxAdminGrant bounds a single admin grant when no limit is configured.
const DefaultMaxAdminGrant = 10000

type CreditsHandler struct {
	ledger      service.CreditLedger
	authService service.IAuthService
	maxGrant    int64
	logger      *zap.Logger
}

func NewCreditsHandler(ledger service.CreditLedger, authService service.IAuthService, maxGrant int64, logger *zap.Logger) *CreditsHandler {
	if maxGrant <= 0 {
		maxGrant = DefaultMaxAdminGrant
	}
	return &CreditsHandler{ledger: ledger, authService: authService, maxGrant: maxGrant, logger: logger}
}

func (h *CreditsHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, adminOnly gin.HandlerFunc) {
	creditsGroup := router.Group("/credits", requireAuth)
	{
		creditsGroup.GET("/balance", h.Balance)
		creditsGroup.GET("/history", h.History)
		creditsGroup.GET("/summary", h.Summary)
		creditsGroup.POST("/welcome", h.ClaimWelcome)
	}
	router.POST("/admin/credits/grant", requireAuth, adminOnly, h.AdminGrant)
}

func (h *CreditsHandler) Balance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	balance, err := h.ledger.RemainingCredits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credits": balance})
}

func (h *CreditsHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := queryInt(c, "page", 1), queryInt(c, "limit", 20)
	entries, total, err := h.ledger.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []models.CreditTransaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": entries, "total": total, "page": page, "limit": limit})
}

func (h *CreditsHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := h.ledger.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ClaimWelcome grants the welcome bonus to users who missed it at
// registration. It is a no-op for everyone else.
func (h *CreditsHandler) ClaimWelcome(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	result, err := h.ledger.GrantWelcomeCredits(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CreditsHandler) AdminGrant(c *gin.Context) {
	var req types.AdminGrantRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Credits > h.maxGrant {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credits must be between 1 and the admin grant limit", "max": h.maxGrant})
		return
	}

	var (
		user *models.User
		err  error
	)
	switch {
	case req.UserID != nil:
		user, err = h.authService.GetUserByID(c.Request.Context(), *req.UserID)
	case req.Email != "":
		user, err = h.authService.GetUserByEmail(c.Request.Context(), req.Email)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId or email is required"})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	scene := req.Scene
	if scene == "" {
		scene = models.SceneAward
	}
	grant := credits.Grant{
		UserID:      user.ID,
		UserEmail:   user.Email,
		Credits:     req.Credits,
		Scene:       scene,
		Description: req.Description,
		Metadata:    map[string]interface{}{"granted_by": c.GetString(middleware.ContextUserEmail)},
	}
	if req.ExpiresInDays > 0 {
		expires := time.Now().UTC().AddDate(0, 0, req.ExpiresInDays)
		grant.ExpiresAt = &expires
	}

	entry, err := h.ledger.CreateCredit(c.Request.Context(), grant)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("admin credit grant",
		zap.String("admin", c.GetString(middleware.ContextUserEmail)),
		zap.String("user_id", user.ID.String()),
		zap.Int64("credits", req.Credits))
	c.JSON(http.StatusCreated, gin.H{"transaction": entry, "remaining": entry.RemainingCredits})
}
