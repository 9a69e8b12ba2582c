package service

import (
	"math"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
)

var embeddingSlot = map[images.Category]int{
	images.Beef:       0,
	images.Pork:       1,
	images.Chicken:    2,
	images.Seafood:    3,
	images.Vegetables: 4,
	images.Lamb:       5,
	images.Sausages:   5,
	images.Skewers:    5,
	images.Burgers:    5,
	images.Other:      5,
}

var difficultyWeight = map[string]float32{"easy": 0, "medium": 0.5, "hard": 1}

// RecipeEmbedding returns a deterministic profile vector for similarity
// search: the protein category one-hot in the first six dimensions, then
// difficulty and total time scaled to [0, 1].
func RecipeEmbedding(r *models.BBQRecipe) pgvector.Vector {
	v := make([]float32, models.EmbeddingDimensions)
	if slot, ok := embeddingSlot[images.Category(r.Category)]; ok {
		v[slot] = 1
	}
	v[6] = difficultyWeight[r.Difficulty]
	v[7] = float32(math.Min(float64(r.PrepTime+r.CookTime)/180, 1))
	return pgvector.NewVector(v)
}
