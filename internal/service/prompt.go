package service

import (
	"fmt"
	"strings"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

const DefaultRecipeCount = 4

var budgetText = map[string]map[units.Locale]string{
	types.BudgetLow:    {units.English: "budget-friendly ($10-20 per person)", units.German: "günstig (10-20€ pro Person)"},
	types.BudgetMedium: {units.English: "moderate ($20-40 per person)", units.German: "mittel (20-40€ pro Person)"},
	types.BudgetHigh:   {units.English: "premium ($40+ per person)", units.German: "premium (40€+ pro Person)"},
}

// Recipes are generated in German for de and in English otherwise.
var languageInstruction = map[units.Locale]string{
	units.English: "Write all recipe content in English.",
	units.German:  "Schreibe alle Rezeptinhalte auf Deutsch.",
}

// BuildMenuPrompt renders the generation request as a single user message.
// Amounts are always requested in metric units; localization happens on read.
func BuildMenuPrompt(req *types.GenerateMenuRequest, count int) string {
	if count <= 0 {
		count = DefaultRecipeCount
	}
	lang := units.ParseLocale(req.Language)
	if lang != units.German {
		lang = units.English
	}
	budget := budgetText[req.Budget][lang]
	if budget == "" {
		budget = budgetText[types.BudgetMedium][units.English]
	}
	dietary := "None"
	if len(req.DietaryNeeds) > 0 {
		dietary = strings.Join(req.DietaryNeeds, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a BBQ pitmaster. Generate exactly %d American BBQ or German grill recipes.\n\n", count)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Servings: %d people\n", req.Servings)
	fmt.Fprintf(&b, "- Budget level: %s\n", budget)
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", dietary)
	if req.Preferences != "" {
		fmt.Fprintf(&b, "- Additional preferences: %s\n", req.Preferences)
	}
	if req.AvailableIngredients != "" {
		fmt.Fprintf(&b, "- Available ingredients to use: %s\n", req.AvailableIngredients)
	}
	b.WriteString("\n")
	b.WriteString(languageInstruction[lang])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `Respond ONLY with a JSON array of exactly %d objects:
[{"name": "", "description": "", "prepTime": 15, "cookTime": 25, "difficulty": "easy", "servings": %d,
  "ingredients": [{"name": "", "amount": 500, "unit": "g", "price": 800}],
  "instructions": ["Preheat grill to 200°C"], "imageQuery": "grilled beef steak", "grillTips": [""]}]

"amount" is a number, "unit" is one of g, ml, piece, tbsp, tsp, clove, sprig. "price" is in cents.
Temperatures are in °C. "difficulty" is easy, medium or hard. "imageQuery" is an English phrase.`, count, req.Servings)
	return b.String()
}
