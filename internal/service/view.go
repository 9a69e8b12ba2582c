package service

import (
	"math"
	"strings"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
)

// RecipeView is a recipe rendered for one locale.
type RecipeView struct {
	ID            uuid.UUID                   `json:"id"`
	Name          string                      `json:"name"`
	Description   string                      `json:"description"`
	PrepTime      int                         `json:"prepTime"`
	CookTime      int                         `json:"cookTime"`
	TotalTime     string                      `json:"totalTime"`
	Difficulty    string                      `json:"difficulty"`
	Servings      int                         `json:"servings"`
	Ingredients   []units.LocalizedIngredient `json:"ingredients"`
	Instructions  []string                    `json:"instructions"`
	Tips          []string                    `json:"tips,omitempty"`
	Image         string                      `json:"image"`
	ImageQuery    string                      `json:"imageQuery,omitempty"`
	Category      string                      `json:"category,omitempty"`
	EstimatedCost string                      `json:"estimatedCost,omitempty"`
	IsFavorited   bool                        `json:"isFavorited"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

var localeCurrency = map[units.Locale]string{
	units.English: "USD",
	units.German:  "EUR",
	units.Chinese: "CNY",
}

// CurrencyFor returns the display currency of a locale.
func CurrencyFor(loc units.Locale) string {
	if c, ok := localeCurrency[loc]; ok {
		return c
	}
	return units.DefaultCurrency
}

// LocalizeRecipe renders r for loc. Stored amounts and temperatures are
// canonical, so the view is derived on every read.
func LocalizeRecipe(r *models.BBQRecipe, loc units.Locale) RecipeView {
	v := RecipeView{
		ID:           r.ID,
		Name:         r.Title,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    units.FormatCookingTime(r.PrepTime+r.CookTime, loc),
		Difficulty:   r.Difficulty,
		Servings:     r.Servings,
		Ingredients:  units.FormatIngredients(r.Ingredients, loc),
		Instructions: units.LocalizeInstructions(r.Instructions, loc),
		Tips:         units.LocalizeInstructions(r.Tips, loc),
		Image:        r.ImageURL,
		ImageQuery:   r.ImageQuery,
		Category:     r.Category,
		CreatedAt:    r.CreatedAt,
	}
	var total int64
	var priced bool
	for _, ing := range r.Ingredients {
		if ing.Price != nil {
			total += *ing.Price
			priced = true
		}
	}
	if priced {
		v.EstimatedCost = units.FormatPrice(total, loc, CurrencyFor(loc))
	}
	return v
}

// canonicalIngredient converts a generated ingredient to canonical units.
// Weight and volume units are converted to g and ml; unknown units are kept
// and displayed verbatim.
func canonicalIngredient(g GeneratedIngredient) units.Ingredient {
	amount := math.Max(float64(g.Amount), 0)
	unit := strings.ToLower(strings.TrimSpace(g.Unit))
	out := units.Ingredient{Name: strings.TrimSpace(g.Name), Amount: amount, Price: g.Price}

	switch u := units.IngredientUnit(unit); u {
	case units.UnitGram, units.UnitML, units.UnitPiece, units.UnitTbsp, units.UnitTsp, units.UnitClove, units.UnitSprig:
		out.Unit = u
		return out
	case "":
		out.Unit = units.UnitPiece
		return out
	}
	if grams, err := units.ParseWeightStrict(amount, unit); err == nil {
		out.Amount, out.Unit = grams, units.UnitGram
		return out
	}
	if ml, err := units.ParseVolumeStrict(amount, unit); err == nil {
		out.Amount, out.Unit = ml, units.UnitML
		return out
	}
	out.Unit = units.IngredientUnit(unit)
	return out
}
