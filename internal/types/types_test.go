package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterOn(v))
	return v
}

func TestGenerateMenuRequestValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     GenerateMenuRequest
		wantErr bool
	}{
		{"empty uses defaults", GenerateMenuRequest{}, false},
		{"full", GenerateMenuRequest{Servings: 8, Budget: "high", DietaryNeeds: []string{"halal"}, Language: "de-DE"}, false},
		{"too many servings", GenerateMenuRequest{Servings: 51}, true},
		{"negative servings", GenerateMenuRequest{Servings: -1}, true},
		{"unknown budget", GenerateMenuRequest{Budget: "luxury"}, true},
		{"unknown language", GenerateMenuRequest{Language: "fr"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateMenuRequestNormalize(t *testing.T) {
	req := GenerateMenuRequest{Preferences: "  smoky  "}
	req.Normalize()
	assert.Equal(t, DefaultServings, req.Servings)
	assert.Equal(t, BudgetMedium, req.Budget)
	assert.Equal(t, "en", req.Language)
	assert.Equal(t, "smoky", req.Preferences)
}

func TestFeedbackRequestValidation(t *testing.T) {
	v := newValidator(t)
	assert.Error(t, v.Struct(FeedbackRequest{Rating: 6}))
	assert.Error(t, v.Struct(ShoppingItemInput{Name: "Salt", Unit: "lb"}))
	assert.NoError(t, v.Struct(ShoppingItemInput{Name: "Salt", Unit: "g", Amount: 5}))
}
