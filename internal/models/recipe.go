package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const (
	RecipeActive   = "active"
	RecipeArchived = "archived"
)

// EmbeddingDimensions is the size of the recipe similarity vector.
const EmbeddingDimensions = 8

// BBQRecipe is a generated recipe owned by a user. Amounts are stored in
// canonical units and localized on read.
type BBQRecipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	GenerationID *uuid.UUID     `gorm:"type:varchar(36);index" json:"generation_id,omitempty"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PrepTime     int            `gorm:"not null;default:15" json:"prep_time"`
	CookTime     int            `gorm:"not null;default:30" json:"cook_time"`
	Difficulty   string         `gorm:"size:16;not null;default:'medium'" json:"difficulty"`
	Servings     int            `gorm:"not null;default:4" json:"servings"`
	Ingredients  IngredientList `gorm:"type:text;not null" json:"ingredients"`
	Instructions StringArray    `gorm:"type:text;not null" json:"instructions"`
	Tips         StringArray    `gorm:"type:text" json:"tips,omitempty"`
	ImageURL     string         `gorm:"size:512" json:"image_url"`
	ImageQuery   string         `gorm:"size:255" json:"image_query,omitempty"`
	Category     string         `gorm:"size:32" json:"category,omitempty"`
	Language     string         `gorm:"size:8;not null;default:'en'" json:"language"`
	Status       string         `gorm:"size:16;not null;default:'active';index" json:"status"`
	// Embedding is nil for recipes created outside menu generation.
	Embedding *pgvector.Vector `gorm:"type:vector(8)" json:"-"`
}

func (BBQRecipe) TableName() string {
	return "bbq_recipes"
}

func (r *BBQRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
}

func (Favorite) TableName() string {
	return "bbq_favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type RecipeHistory struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null" json:"recipe_id"`
	ViewedAt time.Time `gorm:"not null;index" json:"viewed_at"`
}

func (RecipeHistory) TableName() string {
	return "bbq_recipe_history"
}

func (h *RecipeHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.ViewedAt.IsZero() {
		h.ViewedAt = time.Now()
	}
	return nil
}
