package types

import (
	"strings"

	"github.com/google/uuid"
)

// Budget levels accepted by menu generation.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

const DefaultServings = 4

// GenerateMenuRequest is the body of POST /bbq/generate-menu.
type GenerateMenuRequest struct {
	Servings             int      `json:"servings" binding:"omitempty,min=1,max=50"`
	Budget               string   `json:"budget" binding:"omitempty,oneof=low medium high"`
	DietaryNeeds         []string `json:"dietaryNeeds" binding:"omitempty,max=10,dive,max=50"`
	Preferences          string   `json:"preferences" binding:"max=500"`
	AvailableIngredients string   `json:"availableIngredients" binding:"max=500"`
	Language             string   `json:"language" binding:"omitempty,locale"`
}

// Normalize fills in defaults for omitted fields.
func (r *GenerateMenuRequest) Normalize() {
	if r.Servings == 0 {
		r.Servings = DefaultServings
	}
	if r.Budget == "" {
		r.Budget = BudgetMedium
	}
	if r.Language == "" {
		r.Language = "en"
	}
	r.Preferences = strings.TrimSpace(r.Preferences)
	r.AvailableIngredients = strings.TrimSpace(r.AvailableIngredients)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Locale   string `json:"locale" binding:"omitempty,locale"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
	Credits int64       `json:"credits"`
}

// AdminGrantRequest grants credits to a user identified by id or email.
// Credits is bounded by the configured maximum in the handler.
type AdminGrantRequest struct {
	UserID        *uuid.UUID `json:"userId"`
	Email         string     `json:"email" binding:"omitempty,email"`
	Credits       int64      `json:"credits" binding:"required,min=1"`
	Scene         string     `json:"scene" binding:"omitempty,oneof=GIFT AWARD PAYMENT"`
	Description   string     `json:"description" binding:"max=255"`
	ExpiresInDays int        `json:"expiresInDays" binding:"omitempty,min=1,max=3650"`
}

type FavoriteRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
}

type HistoryRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
}

// ShoppingItemInput is one item added manually. Amount is in the canonical
// unit for Unit.
type ShoppingItemInput struct {
	Name   string  `json:"name" binding:"required,max=255"`
	Amount float64 `json:"amount" binding:"min=0"`
	Unit   string  `json:"unit" binding:"omitempty,oneof=g ml piece tbsp tsp clove sprig"`
	Price  *int64  `json:"price" binding:"omitempty,min=0"`
}

type AddShoppingItemsRequest struct {
	Items []ShoppingItemInput `json:"items" binding:"required,min=1,max=100,dive"`
}

type UpdateShoppingItemRequest struct {
	Bought *bool `json:"bought" binding:"required"`
}

type FeedbackRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
	Rating   int       `json:"rating" binding:"required,min=1,max=5"`
	Helpful  *bool     `json:"helpful"`
	Comment  string    `json:"comment" binding:"max=2000"`
}

type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email,max=255"`
	Locale string `json:"locale" binding:"omitempty,locale"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// FormatRequest asks for canonical quantities rendered for a locale.
type FormatRequest struct {
	Locale       string              `json:"locale" binding:"omitempty,locale"`
	Ingredients  []IngredientPayload `json:"ingredients" binding:"omitempty,max=200,dive"`
	Instructions []string            `json:"instructions" binding:"omitempty,max=100"`
	CookMinutes  *int                `json:"cookMinutes" binding:"omitempty,min=0"`
	PriceCents   *int64              `json:"priceCents"`
	Currency     string              `json:"currency" binding:"omitempty,len=3"`
}

type IngredientPayload struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"min=0"`
	Unit   string  `json:"unit" binding:"required"`
	Price  *int64  `json:"price"`
}

// ParseQuantityRequest converts a display quantity such as "1.5 lb" back to
// canonical units.
type ParseQuantityRequest struct {
	Quantity string `json:"quantity" binding:"required,max=64"`
	Kind     string `json:"kind" binding:"required,oneof=weight volume temperature length"`
	Strict   bool   `json:"strict"`
}
