package units

import (
	"errors"
	"fmt"
)

// IngredientUnit is the stored unit of an ingredient amount.
type IngredientUnit string

const (
	UnitGram  IngredientUnit = "g"
	UnitML    IngredientUnit = "ml"
	UnitPiece IngredientUnit = "piece"
	UnitTbsp  IngredientUnit = "tbsp"
	UnitTsp   IngredientUnit = "tsp"
	UnitClove IngredientUnit = "clove"
	UnitSprig IngredientUnit = "sprig"
)

var ErrNegativeAmount = errors.New("ingredient amount must not be negative")

// Ingredient stores an amount in its canonical unit. Price is in cents.
type Ingredient struct {
	Name   string         `json:"name"`
	Amount float64        `json:"amount"`
	Unit   IngredientUnit `json:"unit"`
	Price  *int64         `json:"price,omitempty"`
}

// LocalizedIngredient is an Ingredient with its amount rendered for display.
type LocalizedIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Price  *int64 `json:"price,omitempty"`
}

func NewIngredient(name string, amount float64, unit IngredientUnit, price *int64) (Ingredient, error) {
	if amount < 0 {
		return Ingredient{}, fmt.Errorf("%s: %w", name, ErrNegativeAmount)
	}
	return Ingredient{Name: name, Amount: amount, Unit: unit, Price: price}, nil
}

var countNouns = map[IngredientUnit]map[Locale]string{
	UnitTbsp:  {English: "tbsp", Chinese: "汤匙", German: "EL"},
	UnitTsp:   {English: "tsp", Chinese: "茶匙", German: "TL"},
	UnitClove: {English: "clove(s)", Chinese: "瓣", German: "Zehe(n)"},
	UnitSprig: {English: "sprig(s)", Chinese: "枝", German: "Zweig(e)"},
}

// FormatIngredient renders the amount of ing for loc.
func FormatIngredient(ing Ingredient, loc Locale) LocalizedIngredient {
	var amount string
	switch ing.Unit {
	case UnitGram:
		amount = FormatWeight(ing.Amount, loc)
	case UnitML:
		amount = FormatVolume(ing.Amount, loc)
	case UnitPiece:
		amount = formatNumber(ing.Amount)
	default:
		if nouns, ok := countNouns[ing.Unit]; ok {
			noun, ok := nouns[loc]
			if !ok {
				noun = nouns[DefaultLocale]
			}
			amount = formatNumber(ing.Amount) + " " + noun
		} else {
			amount = formatNumber(ing.Amount) + " " + string(ing.Unit)
		}
	}
	return LocalizedIngredient{Name: ing.Name, Amount: amount, Price: ing.Price}
}

func FormatIngredients(ings []Ingredient, loc Locale) []LocalizedIngredient {
	out := make([]LocalizedIngredient, 0, len(ings))
	for _, ing := range ings {
		out = append(out, FormatIngredient(ing, loc))
	}
	return out
}
