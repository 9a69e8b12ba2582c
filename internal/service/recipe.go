package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryEntry is one viewed recipe.
type HistoryEntry struct {
	RecipeID uuid.UUID         `json:"recipeId"`
	ViewedAt time.Time         `json:"viewedAt"`
	Recipe   *models.BBQRecipe `json:"recipe,omitempty"`
}

type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, logger: logger}
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}

func (s *RecipeService) active(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("status = ?", models.RecipeActive)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.BBQRecipe, error) {
	var recipe models.BBQRecipe
	if err := s.active(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListUserRecipes returns the user's active recipes, newest first.
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.BBQRecipe, int64, error) {
	offset, limit := pageBounds(page, limit)
	var total int64
	if err := s.active(ctx).Model(&models.BBQRecipe{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recipes []models.BBQRecipe
	err := s.active(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

// ArchiveRecipe hides a recipe owned by userID. Recipes of other users are
// reported as not found.
func (s *RecipeService) ArchiveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.BBQRecipe{}).
		Where("id = ? AND user_id = ? AND status = ?", recipeID, userID, models.RecipeActive).
		Update("status", models.RecipeArchived)
	if res.Error != nil {
		return fmt.Errorf("failed to archive recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchRecipes matches query against the title and description of the
// user's recipes, case-insensitively.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.BBQRecipe, error) {
	_, limit = pageBounds(1, limit)
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var recipes []models.BBQRecipe
	err := s.active(ctx).
		Where("user_id = ?", userID).
		Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

// SimilarRecipes returns the owner's recipes closest to recipeID. Postgres
// orders by embedding distance; other databases fall back to the same
// category.
func (s *RecipeService) SimilarRecipes(ctx context.Context, recipeID uuid.UUID, limit int) ([]models.BBQRecipe, error) {
	_, limit = pageBounds(1, limit)
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	q := s.active(ctx).Where("user_id = ? AND id <> ?", recipe.UserID, recipe.ID).Limit(limit)
	var recipes []models.BBQRecipe
	if s.db.Dialector.Name() == "postgres" {
		err = q.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{RecipeEmbedding(recipe)}},
		}).Find(&recipes).Error
	} else {
		err = q.Where("category = ?", recipe.Category).Order("created_at DESC").Find(&recipes).Error
	}
	return recipes, err
}

func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	favorited, err := s.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if favorited {
		return ErrAlreadyFavorited
	}
	if err := s.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		// lost a race against the unique index
		if again, checkErr := s.IsFavorited(ctx, userID, recipeID); checkErr == nil && again {
			return ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RecipeService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}

// ListFavorites returns favorited recipes, most recently favorited first.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.BBQRecipe, error) {
	offset, limit := pageBounds(page, limit)
	var recipes []models.BBQRecipe
	err := s.db.WithContext(ctx).
		Joins("JOIN bbq_favorites ON bbq_favorites.recipe_id = bbq_recipes.id").
		Where("bbq_favorites.user_id = ? AND bbq_recipes.status = ?", userID, models.RecipeActive).
		Order("bbq_favorites.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

func (s *RecipeService) RecordView(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	entry := &models.RecipeHistory{UserID: userID, RecipeID: recipeID, ViewedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// ListHistory returns recently viewed recipes, newest first. Archived
// recipes keep their history entry without the recipe.
func (s *RecipeService) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryEntry, error) {
	_, limit = pageBounds(1, limit)
	var rows []models.RecipeHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []HistoryEntry{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RecipeID)
	}
	var recipes []models.BBQRecipe
	if err := s.active(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.BBQRecipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, HistoryEntry{RecipeID: r.RecipeID, ViewedAt: r.ViewedAt, Recipe: byID[r.RecipeID]})
	}
	return entries, nil
}
