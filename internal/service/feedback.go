package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FeedbackService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFeedbackService(db *gorm.DB, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{db: db, logger: logger}
}

// Submit stores a rating. Feedback may be anonymous.
func (s *FeedbackService) Submit(ctx context.Context, userID *uuid.UUID, req *types.FeedbackRequest) (*models.Feedback, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.BBQRecipe{}).Where("id = ?", req.RecipeID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	feedback := &models.Feedback{
		UserID:   userID,
		RecipeID: req.RecipeID,
		Rating:   req.Rating,
		Helpful:  req.Helpful,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	s.logger.Info("recipe feedback received",
		zap.String("recipe_id", req.RecipeID.String()),
		zap.Int("rating", req.Rating))
	return feedback, nil
}

func (s *FeedbackService) Stats(ctx context.Context, recipeID uuid.UUID) (*models.FeedbackStats, error) {
	var row struct {
		Count         int64
		AverageRating float64
		HelpfulCount  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Feedback{}).
		Select(`COUNT(*) AS count,
			COALESCE(AVG(rating), 0) AS average_rating,
			CAST(COALESCE(SUM(CASE WHEN helpful THEN 1 ELSE 0 END), 0) AS BIGINT) AS helpful_count`).
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback stats: %w", err)
	}
	return &models.FeedbackStats{
		RecipeID:      recipeID,
		Count:         row.Count,
		AverageRating: row.AverageRating,
		HelpfulCount:  row.HelpfulCount,
	}, nil
}
