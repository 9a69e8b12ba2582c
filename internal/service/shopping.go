package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShoppingItemView is a shopping list line with its amount localized.
type ShoppingItemView struct {
	models.ShoppingItem
	Display string `json:"display"`
	// PriceText is the formatted price, empty without a price.
	PriceText string `json:"priceText,omitempty"`
}

type ShoppingService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewShoppingService(db *gorm.DB, logger *zap.Logger) *ShoppingService {
	return &ShoppingService{db: db, logger: logger}
}

func (s *ShoppingService) List(ctx context.Context, userID uuid.UUID, loc units.Locale) ([]ShoppingItemView, error) {
	var items []models.ShoppingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("bought ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	views := make([]ShoppingItemView, 0, len(items))
	for _, item := range items {
		localized := units.FormatIngredient(units.Ingredient{
			Name:   item.Name,
			Amount: item.Amount,
			Unit:   units.IngredientUnit(item.Unit),
			Price:  item.Price,
		}, loc)
		view := ShoppingItemView{ShoppingItem: item, Display: localized.Amount}
		if item.Price != nil {
			view.PriceText = units.FormatPrice(*item.Price, loc, CurrencyFor(loc))
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ShoppingService) AddItems(ctx context.Context, userID uuid.UUID, inputs []types.ShoppingItemInput) ([]models.ShoppingItem, error) {
	items := make([]models.ShoppingItem, 0, len(inputs))
	for _, in := range inputs {
		unit := in.Unit
		if unit == "" {
			unit = string(units.UnitPiece)
		}
		ing, err := units.NewIngredient(strings.TrimSpace(in.Name), in.Amount, units.IngredientUnit(unit), in.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, models.ShoppingItem{
			UserID: userID,
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   string(ing.Unit),
			Price:  ing.Price,
		})
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to add shopping items: %w", err)
	}
	return items, nil
}

// AddRecipe copies every ingredient of a recipe onto the list.
func (s *ShoppingService) AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]models.ShoppingItem, error) {
	var recipe models.BBQRecipe
	err := s.db.WithContext(ctx).Where("status = ?", models.RecipeActive).First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(recipe.Ingredients) == 0 {
		return []models.ShoppingItem{}, nil
	}

	items := make([]models.ShoppingItem, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		rid := recipe.ID
		items = append(items, models.ShoppingItem{
			UserID:   userID,
			RecipeID: &rid,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     string(ing.Unit),
			Price:    ing.Price,
		})
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to add recipe to shopping list: %w", err)
	}
	return items, nil
}

func (s *ShoppingService) SetBought(ctx context.Context, userID, itemID uuid.UUID, bought bool) (*models.ShoppingItem, error) {
	res := s.db.WithContext(ctx).Model(&models.ShoppingItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("bought", bought)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update shopping item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var item models.ShoppingItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShoppingService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.ShoppingItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove shopping item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the list, or only its bought items, and returns how many
// items were removed.
func (s *ShoppingService) Clear(ctx context.Context, userID uuid.UUID, boughtOnly bool) (int64, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if boughtOnly {
		q = q.Where("bought = ?", true)
	}
	res := q.Delete(&models.ShoppingItem{})
	return res.RowsAffected, res.Error
}
