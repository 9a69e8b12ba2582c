package service_test

import (
	"testing"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Pit Master", Email: email, PasswordHash: "x", Locale: "en"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title, category string) *models.BBQRecipe {
	t.Helper()
	price := int64(1200)
	recipe := &models.BBQRecipe{
		UserID:      userID,
		Title:       title,
		Description: title + " from the grill",
		PrepTime:    20,
		CookTime:    40,
		Difficulty:  "medium",
		Servings:    4,
		Ingredients: models.IngredientList{
			{Name: "Pork shoulder", Amount: 1000, Unit: units.UnitGram, Price: &price},
			{Name: "Garlic", Amount: 3, Unit: units.UnitClove},
		},
		Instructions: models.StringArray{"Grill at 180°C"},
		Category:     category,
		Language:     "en",
		Status:       models.RecipeActive,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
