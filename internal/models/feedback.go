package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    *uuid.UUID `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	RecipeID  uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Rating    int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Helpful   *bool      `json:"helpful,omitempty"`
	Comment   string     `gorm:"type:text" json:"comment,omitempty"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "bbq_recipe_feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FeedbackStats aggregates the feedback of one recipe.
type FeedbackStats struct {
	RecipeID      uuid.UUID `json:"recipe_id"`
	Count         int64     `json:"count"`
	AverageRating float64   `json:"average_rating"`
	HelpfulCount  int64     `json:"helpful_count"`
}
