package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
)

func TestRecipeFavoritesAndHistory(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "griller@example.com")
	ids := s.generate(t, token)
	require.Len(t, ids, 4)
	wings := ids[0]

	w := s.do(t, http.MethodGet, "/api/v1/recipes?locale=de", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []service.RecipeView `json:"recipes"`
		Total   int64                `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, int64(4), list.Total)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+wings, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var anon service.RecipeView
	decode(t, w, &anon)
	assert.Equal(t, "Spicy BBQ Chicken Wings", anon.Name)
	assert.False(t, anon.IsFavorited)

	w = s.do(t, http.MethodPost, "/api/v1/favorites", token, gin.H{"recipeId": wings})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/favorites", token, gin.H{"recipeId": wings})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+wings+"?locale=de", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view service.RecipeView
	decode(t, w, &view)
	assert.True(t, view.IsFavorited)
	assert.Equal(t, "800 g", view.Ingredients[0].Amount)

	w = s.do(t, http.MethodGet, "/api/v1/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		History []struct {
			RecipeID string              `json:"recipeId"`
			Recipe   *service.RecipeView `json:"recipe"`
		} `json:"history"`
	}
	decode(t, w, &history)
	require.Len(t, history.History, 1)
	assert.Equal(t, wings, history.History[0].RecipeID)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipesSaved":4,"generationsThisMonth":1,"credits":2}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/v1/favorites/"+wings, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/favorites/"+wings, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchiveRecipe(t *testing.T) {
	s := newTestServer(t)
	owner := s.register(t, "owner@example.com")
	other := s.register(t, "other@example.com")
	id := s.generate(t, owner)[0]

	w := s.do(t, http.MethodDelete, "/api/v1/recipes/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/recipes/"+id, owner, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/"+id, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRecipes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "griller@example.com")
	s.generate(t, token)

	w := s.do(t, http.MethodGet, "/api/v1/recipes/search?q=WINGS", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipes []service.RecipeView `json:"recipes"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Spicy BBQ Chicken Wings", resp.Recipes[0].Name)

	w = s.do(t, http.MethodGet, "/api/v1/recipes/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
