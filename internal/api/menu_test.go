package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/middleware"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/mocks"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

func TestGenerateMenuUntilCreditsRunOut(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "griller@example.com")
	s.llm.On("GenerateMenu", mock.Anything, mock.Anything, service.DefaultRecipeCount).
		Return(service.MockRecipes("en", 4), nil).Times(3)

	for want := int64(2); want >= 0; want-- {
		w := s.do(t, http.MethodPost, "/api/v1/bbq/generate-menu", token, gin.H{"servings": 4, "budget": "medium"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result service.MenuResult
		decode(t, w, &result)
		assert.Equal(t, int64(1), result.CreditsUsed)
		assert.Equal(t, want, result.RemainingCredits)
		require.NotEmpty(t, result.Recipes)
		assert.Equal(t, "1.8 lb", result.Recipes[0].Ingredients[0].Amount)
	}

	w := s.do(t, http.MethodPost, "/api/v1/bbq/generate-menu", token, gin.H{})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"error":"insufficient credits","required":1,"remaining":0}`, w.Body.String())
	s.llm.AssertExpectations(t)

	w = s.do(t, http.MethodGet, "/api/v1/bbq/generations/monthly", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestGenerateMenuUsesAcceptLanguage(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "griller@example.com")
	s.llm.On("GenerateMenu", mock.Anything, mock.MatchedBy(func(req *types.GenerateMenuRequest) bool {
		return req.Language == "de"
	}), service.DefaultRecipeCount).Return(service.MockRecipes("de", 4), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bbq/generate-menu", strings.NewReader(`{"servings":6}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.MenuResult
	decode(t, w, &result)
	require.NotEmpty(t, result.Recipes)
	assert.Equal(t, "800 g", result.Recipes[0].Ingredients[0].Amount)
	assert.Contains(t, result.Recipes[0].EstimatedCost, "€")
}

func TestGenerateMenuValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "griller@example.com")

	tests := []struct {
		name string
		body gin.H
	}{
		{"too many servings", gin.H{"servings": 51}},
		{"unknown budget", gin.H{"budget": "lavish"}},
		{"unsupported language", gin.H{"language": "fr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/bbq/generate-menu", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	s.llm.AssertNotCalled(t, "GenerateMenu", mock.Anything, mock.Anything, mock.Anything)

	w := s.do(t, http.MethodPost, "/api/v1/bbq/generate-menu", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateMenuErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"generation failed", fmt.Errorf("%w: upstream timeout", service.ErrGenerationFailed), http.StatusBadGateway},
		{"ledger down", fmt.Errorf("consume: %w", credits.ErrLedgerUnavailable), http.StatusServiceUnavailable},
		{"insufficient", &credits.InsufficientCreditsError{Requested: 1, Available: 0}, http.StatusPaymentRequired},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			token := s.register(t, "griller@example.com")

			menu := new(mocks.MockMenuService)
			menu.On("GenerateMenu", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			router := gin.New()
			group := router.Group("/api/v1")
			NewMenuHandler(menu, s.auth, nil, zap.NewNop()).RegisterRoutes(group, middleware.AuthMiddleware(s.auth))

			w := doRequest(t, router, http.MethodPost, "/api/v1/bbq/generate-menu", token, gin.H{})
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			menu.AssertExpectations(t)
		})
	}
}
