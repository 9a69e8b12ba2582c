package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingItem is one line of a user's shopping list. Amount is canonical
// (grams, milliliters or a count, depending on Unit).
type ShoppingItem struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UserID    uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID  *uuid.UUID `gorm:"type:varchar(36)" json:"recipe_id,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Amount    float64    `gorm:"not null;default:0" json:"amount"`
	Unit      string     `gorm:"size:16;not null;default:'piece'" json:"unit"`
	Price     *int64     `json:"price,omitempty"`
	Bought    bool       `gorm:"not null;default:false" json:"bought"`
}

func (ShoppingItem) TableName() string {
	return "bbq_shopping_items"
}

func (s *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
