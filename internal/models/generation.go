package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenerationCompleted = "completed"
	GenerationFailed    = "failed"
)

// MenuGeneration records one menu generation request.
type MenuGeneration struct {
	ID                   uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt            time.Time   `gorm:"index" json:"created_at"`
	UserID               uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Servings             int         `json:"servings"`
	Budget               string      `gorm:"size:16" json:"budget"`
	DietaryNeeds         StringArray `gorm:"type:text" json:"dietary_needs"`
	Preferences          string      `gorm:"type:text" json:"preferences,omitempty"`
	AvailableIngredients string      `gorm:"type:text" json:"available_ingredients,omitempty"`
	Language             string      `gorm:"size:8" json:"language"`
	RecipesCount         int         `gorm:"not null;default:0" json:"recipes_count"`
	CreditsUsed          int64       `gorm:"not null;default:0" json:"credits_used"`
	CreditID             *uuid.UUID  `gorm:"type:varchar(36)" json:"credit_id,omitempty"`
	Status               string      `gorm:"size:16;not null;default:'completed'" json:"status"`
	ErrorMessage         string      `gorm:"type:text" json:"error_message,omitempty"`
}

func (MenuGeneration) TableName() string {
	return "bbq_menu_generations"
}

func (g *MenuGeneration) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
