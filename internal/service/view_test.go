package service

import (
	"testing"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalIngredient(t *testing.T) {
	price := int64(300)
	tests := []struct {
		in       GeneratedIngredient
		wantUnit units.IngredientUnit
		want     float64
	}{
		{GeneratedIngredient{Name: "Brisket", Amount: 2, Unit: "lb"}, units.UnitGram, 2 * units.GramsPerPound},
		{GeneratedIngredient{Name: "Beer", Amount: 1, Unit: "cup"}, units.UnitML, units.MLPerCup},
		{GeneratedIngredient{Name: "Salt", Amount: 1, Unit: " TSP "}, units.UnitTsp, 1},
		{GeneratedIngredient{Name: "Buns", Amount: 4}, units.UnitPiece, 4},
		{GeneratedIngredient{Name: "Chili", Amount: 1, Unit: "pinch"}, "pinch", 1},
		{GeneratedIngredient{Name: "Oops", Amount: -3, Unit: "g"}, units.UnitGram, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in.Name, func(t *testing.T) {
			tt.in.Price = &price
			got := canonicalIngredient(tt.in)
			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.InDelta(t, tt.want, got.Amount, 1e-9)
			assert.Equal(t, &price, got.Price)
		})
	}
}

func TestLocalizeRecipe(t *testing.T) {
	p1, p2 := int64(1500), int64(180)
	r := &models.BBQRecipe{
		ID:       uuid.New(),
		Title:    "Chicken Wings",
		PrepTime: 15,
		CookTime: 75,
		Ingredients: models.IngredientList{
			{Name: "Wings", Amount: 800, Unit: units.UnitGram, Price: &p1},
			{Name: "Honey", Amount: 20, Unit: units.UnitML, Price: &p2},
			{Name: "Garlic", Amount: 2, Unit: units.UnitClove},
		},
		Instructions: models.StringArray{"Preheat the grill to 200°C"},
	}

	en := LocalizeRecipe(r, units.English)
	assert.Equal(t, "1.8 lb", en.Ingredients[0].Amount)
	assert.Equal(t, "Preheat the grill to 392°F", en.Instructions[0])
	assert.Equal(t, "1h 30min", en.TotalTime)
	assert.Equal(t, "$16.80", en.EstimatedCost)

	de := LocalizeRecipe(r, units.German)
	assert.Equal(t, "800 g", de.Ingredients[0].Amount)
	assert.Equal(t, "20 ml", de.Ingredients[1].Amount)
	assert.Equal(t, "Preheat the grill to 200°C", de.Instructions[0])
	assert.Contains(t, de.EstimatedCost, "€")

	r.Ingredients = models.IngredientList{{Name: "Salt", Amount: 1, Unit: units.UnitTsp}}
	assert.Empty(t, LocalizeRecipe(r, units.English).EstimatedCost)
}

func TestCurrencyFor(t *testing.T) {
	assert.Equal(t, "USD", CurrencyFor(units.English))
	assert.Equal(t, "EUR", CurrencyFor(units.German))
	assert.Equal(t, "CNY", CurrencyFor(units.Chinese))
	assert.Equal(t, "USD", CurrencyFor("xx"))
}

func TestRecipeEmbedding(t *testing.T) {
	r := &models.BBQRecipe{Category: string(images.Pork), Difficulty: "hard", PrepTime: 60, CookTime: 300}
	v := RecipeEmbedding(r).Slice()
	assert.Len(t, v, models.EmbeddingDimensions)
	assert.Equal(t, float32(1), v[1])
	assert.Equal(t, float32(1), v[6])
	assert.Equal(t, float32(1), v[7])

	lamb := RecipeEmbedding(&models.BBQRecipe{Category: string(images.Lamb), Difficulty: "easy", CookTime: 90}).Slice()
	assert.Equal(t, float32(1), lamb[5])
	assert.Equal(t, float32(0), lamb[6])
	assert.InDelta(t, 0.5, lamb[7], 1e-6)
}
