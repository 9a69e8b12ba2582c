package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/metrics"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SceneMenuGeneration is the ledger scene charged for a generated menu.
const SceneMenuGeneration = "bbq_menu_generation"

type MenuConfig struct {
	GenerationCost int64
	RecipeCount    int
	// DevMode serves mock recipes, free of charge, when the model fails.
	DevMode bool
}

// MenuResult is the outcome of a generation.
type MenuResult struct {
	GenerationID     uuid.UUID    `json:"generationId"`
	Recipes          []RecipeView `json:"recipes"`
	CreditsUsed      int64        `json:"creditsUsed"`
	RemainingCredits int64        `json:"remainingCredits"`
	Mock             bool         `json:"mock,omitempty"`
	// Degraded is set when the ledger was unavailable and the menu was
	// generated without charging.
	Degraded bool `json:"degraded,omitempty"`
}

type MenuService struct {
	db      *gorm.DB
	ledger  CreditLedger
	llm     LLMClient
	catalog *images.Catalog
	config  MenuConfig
	logger  *zap.Logger
}

func NewMenuService(db *gorm.DB, ledger CreditLedger, llm LLMClient, catalog *images.Catalog, config MenuConfig, logger *zap.Logger) *MenuService {
	if config.RecipeCount <= 0 {
		config.RecipeCount = DefaultRecipeCount
	}
	if catalog == nil {
		catalog = images.Default()
	}
	return &MenuService{
		db:      db,
		ledger:  ledger,
		llm:     llm,
		catalog: catalog,
		config:  config,
		logger:  logger,
	}
}

// GenerateMenu charges the generation cost, asks the model for recipes and
// stores them for the user. Insufficient credits fail before any model call.
// A failed generation refunds what was charged.
func (s *MenuService) GenerateMenu(ctx context.Context, user *models.User, req *types.GenerateMenuRequest) (*MenuResult, error) {
	req.Normalize()
	log := s.logger.With(zap.String("user_id", user.ID.String()))
	result := &MenuResult{}

	var receipt *credits.Receipt
	if s.config.GenerationCost > 0 {
		r, err := s.ledger.ConsumeCredits(ctx, credits.Consumption{
			UserID:      user.ID,
			UserEmail:   user.Email,
			Credits:     s.config.GenerationCost,
			Scene:       SceneMenuGeneration,
			Description: "BBQ menu generation",
		})
		switch {
		case err == nil:
			receipt = r
			result.CreditsUsed = s.config.GenerationCost
		case errors.Is(err, credits.ErrInsufficientCredits):
			metrics.MenuGenerations.WithLabelValues("insufficient").Inc()
			return nil, err
		case errors.Is(err, credits.ErrLedgerUnavailable):
			log.Warn("credit ledger unavailable, generating without charge", zap.Error(err))
			result.Degraded = true
		default:
			return nil, err
		}
	}

	generated, err := s.llm.GenerateMenu(ctx, req, s.config.RecipeCount)
	if err != nil {
		if !s.config.DevMode {
			s.refund(ctx, receipt, "menu generation failed")
			s.recordFailure(ctx, user.ID, req, err)
			metrics.MenuGenerations.WithLabelValues("failed").Inc()
			log.Error("menu generation failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
		log.Warn("ai call failed, serving mock recipes", zap.Error(err))
		s.refund(ctx, receipt, "mock menu served")
		receipt = nil
		result.CreditsUsed = 0
		result.Mock = true
		generated = MockRecipes(req.Language, req.Servings)
	}

	gen, recipes, err := s.persist(ctx, user.ID, req, generated, receipt)
	if err != nil {
		s.refund(ctx, receipt, "menu could not be saved")
		metrics.MenuGenerations.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: failed to save menu: %w", ErrGenerationFailed, err)
	}

	loc := units.ParseLocale(req.Language)
	result.GenerationID = gen.ID
	result.Recipes = make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		result.Recipes = append(result.Recipes, LocalizeRecipe(&recipes[i], loc))
	}

	if s.ledger != nil {
		if balance, err := s.ledger.RemainingCredits(ctx, user.ID); err == nil {
			result.RemainingCredits = balance
		} else if receipt != nil {
			result.RemainingCredits = receipt.Remaining
		}
	}

	outcome := models.GenerationCompleted
	switch {
	case result.Mock:
		outcome = "mock"
	case result.Degraded:
		outcome = "degraded"
	}
	metrics.MenuGenerations.WithLabelValues(outcome).Inc()
	log.Info("menu generated",
		zap.String("generation_id", gen.ID.String()),
		zap.Int("recipes", len(recipes)),
		zap.Int64("credits_used", result.CreditsUsed))
	return result, nil
}

func (s *MenuService) refund(ctx context.Context, receipt *credits.Receipt, reason string) {
	if receipt == nil {
		return
	}
	// the request context may be cancelled when the model times out
	if _, err := s.ledger.Refund(context.WithoutCancel(ctx), receipt, reason); err != nil {
		s.logger.Error("failed to refund credits",
			zap.String("user_id", receipt.UserID.String()),
			zap.Int64("credits", receipt.Credits),
			zap.Error(err))
	}
}

func newGeneration(userID uuid.UUID, req *types.GenerateMenuRequest) *models.MenuGeneration {
	return &models.MenuGeneration{
		CreatedAt:            time.Now().UTC(),
		UserID:               userID,
		Servings:             req.Servings,
		Budget:               req.Budget,
		DietaryNeeds:         req.DietaryNeeds,
		Preferences:          req.Preferences,
		AvailableIngredients: req.AvailableIngredients,
		Language:             string(units.ParseLocale(req.Language)),
	}
}

func (s *MenuService) recordFailure(ctx context.Context, userID uuid.UUID, req *types.GenerateMenuRequest, cause error) {
	gen := newGeneration(userID, req)
	gen.Status = models.GenerationFailed
	gen.ErrorMessage = cause.Error()
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(gen).Error; err != nil {
		s.logger.Error("failed to record failed generation", zap.Error(err))
	}
}

func (s *MenuService) persist(ctx context.Context, userID uuid.UUID, req *types.GenerateMenuRequest, generated []GeneratedRecipe, receipt *credits.Receipt) (*models.MenuGeneration, []models.BBQRecipe, error) {
	gen := newGeneration(userID, req)
	gen.Status = models.GenerationCompleted
	gen.RecipesCount = len(generated)
	if receipt != nil {
		gen.CreditsUsed = receipt.Credits
		if len(receipt.Entries) > 0 {
			id := receipt.Entries[0].ID
			gen.CreditID = &id
		}
	}

	recipes := make([]models.BBQRecipe, 0, len(generated))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(gen).Error; err != nil {
			return err
		}
		for i, g := range generated {
			recipes = append(recipes, s.buildRecipe(userID, gen.ID, gen.Language, i, g))
		}
		if len(recipes) == 0 {
			return nil
		}
		return tx.Create(&recipes).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return gen, recipes, nil
}

func (s *MenuService) buildRecipe(userID, generationID uuid.UUID, language string, index int, g GeneratedRecipe) models.BBQRecipe {
	ingredients := make(models.IngredientList, 0, len(g.Ingredients))
	for _, gi := range g.Ingredients {
		ingredients = append(ingredients, canonicalIngredient(gi))
	}

	name := strings.TrimSpace(g.Name)
	query := strings.TrimSpace(g.ImageQuery)
	var category string
	if cat, ok := s.catalog.Match(query + " " + name); ok {
		category = string(cat)
	}

	r := models.BBQRecipe{
		ID:           uuid.New(),
		UserID:       userID,
		GenerationID: &generationID,
		Title:        name,
		Description:  strings.TrimSpace(g.Description),
		PrepTime:     int(g.PrepTime),
		CookTime:     int(g.CookTime),
		Difficulty:   g.Difficulty,
		Servings:     int(g.Servings),
		Ingredients:  ingredients,
		Instructions: g.Instructions,
		Tips:         g.GrillTips,
		ImageURL:     s.catalog.RecipeImage(name, query, index),
		ImageQuery:   query,
		Category:     category,
		Language:     language,
		Status:       models.RecipeActive,
	}
	embedding := RecipeEmbedding(&r)
	r.Embedding = &embedding
	return r
}

// MonthlyGenerationCount counts the user's completed generations in the
// calendar month (UTC) containing now.
func (s *MenuService) MonthlyGenerationCount(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var n int64
	err := s.db.WithContext(ctx).Model(&models.MenuGeneration{}).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, models.GenerationCompleted, start).
		Count(&n).Error
	return n, err
}
