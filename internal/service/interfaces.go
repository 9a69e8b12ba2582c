package service

import (
	"context"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/google/uuid"
)

// CreditLedger is the part of *credits.Service the services depend on.
type CreditLedger interface {
	RemainingCredits(ctx context.Context, userID uuid.UUID) (int64, error)
	CreateCredit(ctx context.Context, g credits.Grant) (*models.CreditTransaction, error)
	ConsumeCredits(ctx context.Context, c credits.Consumption) (*credits.Receipt, error)
	Refund(ctx context.Context, r *credits.Receipt, reason string) ([]*models.CreditTransaction, error)
	GrantWelcomeCredits(ctx context.Context, userID uuid.UUID, email string) (*credits.WelcomeResult, error)
	History(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.CreditTransaction, int64, error)
	Summary(ctx context.Context, userID uuid.UUID) (*credits.Summary, error)
}

// LLMClient produces menu recipes from a chat completion model.
type LLMClient interface {
	GenerateMenu(ctx context.Context, req *types.GenerateMenuRequest, count int) ([]GeneratedRecipe, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// IMenuService generates and records BBQ menus.
type IMenuService interface {
	GenerateMenu(ctx context.Context, user *models.User, req *types.GenerateMenuRequest) (*MenuResult, error)
	MonthlyGenerationCount(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
}

// IRecipeService covers recipes, favorites and view history.
type IRecipeService interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.BBQRecipe, error)
	ListUserRecipes(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.BBQRecipe, int64, error)
	ArchiveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	SearchRecipes(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.BBQRecipe, error)
	SimilarRecipes(ctx context.Context, recipeID uuid.UUID, limit int) ([]models.BBQRecipe, error)

	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.BBQRecipe, error)
	IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)

	RecordView(ctx context.Context, userID, recipeID uuid.UUID) error
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryEntry, error)
}

// IShoppingService manages a user's shopping list.
type IShoppingService interface {
	List(ctx context.Context, userID uuid.UUID, loc units.Locale) ([]ShoppingItemView, error)
	AddItems(ctx context.Context, userID uuid.UUID, items []types.ShoppingItemInput) ([]models.ShoppingItem, error)
	AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]models.ShoppingItem, error)
	SetBought(ctx context.Context, userID, itemID uuid.UUID, bought bool) (*models.ShoppingItem, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID, boughtOnly bool) (int64, error)
}

// IFeedbackService records recipe ratings.
type IFeedbackService interface {
	Submit(ctx context.Context, userID *uuid.UUID, req *types.FeedbackRequest) (*models.Feedback, error)
	Stats(ctx context.Context, recipeID uuid.UUID) (*models.FeedbackStats, error)
}

// ISubscriptionService manages newsletter subscribers.
type ISubscriptionService interface {
	Subscribe(ctx context.Context, email string, loc units.Locale) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendNewsletterWelcome(sub *models.Subscriber) error
}
