package models

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&CreditTransaction{},
		&BBQRecipe{},
		&Favorite{},
		&RecipeHistory{},
		&ShoppingItem{},
		&MenuGeneration{},
		&Feedback{},
		&Subscriber{},
	}
}
