package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecipeLifecycle(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewRecipeService(db, zap.NewNop())
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	ribs := createRecipe(t, db, owner.ID, "Smoked Ribs", "pork")
	createRecipe(t, db, owner.ID, "Pulled Pork", "pork")
	createRecipe(t, db, owner.ID, "Grilled Salmon", "seafood")
	createRecipe(t, db, other.ID, "Pork Belly", "pork")

	got, err := svc.GetRecipe(ctx, ribs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smoked Ribs", got.Title)
	assert.Len(t, got.Ingredients, 2)

	list, total, err := svc.ListUserRecipes(ctx, owner.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	found, err := svc.SearchRecipes(ctx, owner.ID, "PORK", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pulled Pork", found[0].Title)

	similar, err := svc.SimilarRecipes(ctx, ribs.ID, 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "Pulled Pork", similar[0].Title)

	assert.ErrorIs(t, svc.ArchiveRecipe(ctx, other.ID, ribs.ID), service.ErrNotFound)
	require.NoError(t, svc.ArchiveRecipe(ctx, owner.ID, ribs.ID))
	assert.ErrorIs(t, svc.ArchiveRecipe(ctx, owner.ID, ribs.ID), service.ErrNotFound)

	_, err = svc.GetRecipe(ctx, ribs.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, total, err = svc.ListUserRecipes(ctx, owner.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFavorites(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewRecipeService(db, zap.NewNop())
	ctx := context.Background()
	user := createUser(t, db, "fan@example.com")
	brisket := createRecipe(t, db, user.ID, "Brisket", "beef")
	wings := createRecipe(t, db, user.ID, "Wings", "chicken")

	require.NoError(t, svc.AddFavorite(ctx, user.ID, brisket.ID))
	assert.ErrorIs(t, svc.AddFavorite(ctx, user.ID, brisket.ID), service.ErrAlreadyFavorited)
	assert.ErrorIs(t, svc.AddFavorite(ctx, user.ID, uuid.New()), service.ErrNotFound)
	require.NoError(t, svc.AddFavorite(ctx, user.ID, wings.ID))

	ok, err := svc.IsFavorited(ctx, user.ID, brisket.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	favorites, err := svc.ListFavorites(ctx, user.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, brisket.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, user.ID, brisket.ID), service.ErrNotFound)

	favorites, err = svc.ListFavorites(ctx, user.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, wings.ID, favorites[0].ID)
}

func TestHistory(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewRecipeService(db, zap.NewNop())
	ctx := context.Background()
	user := createUser(t, db, "viewer@example.com")
	first := createRecipe(t, db, user.ID, "Burgers", "burgers")
	second := createRecipe(t, db, user.ID, "Skewers", "skewers")

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.RecipeHistory{UserID: user.ID, RecipeID: first.ID, ViewedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, svc.RecordView(ctx, user.ID, second.ID))
	assert.ErrorIs(t, svc.RecordView(ctx, user.ID, uuid.New()), service.ErrNotFound)

	entries, err := svc.ListHistory(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].RecipeID)
	require.NotNil(t, entries[0].Recipe)
	assert.Equal(t, "Skewers", entries[0].Recipe.Title)

	require.NoError(t, svc.ArchiveRecipe(ctx, user.ID, first.ID))
	entries, err = svc.ListHistory(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[1].Recipe)

	empty, err := svc.ListHistory(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
