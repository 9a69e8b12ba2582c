package mocks

import (
	"context"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMenuService is a mock implementation of service.IMenuService
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) GenerateMenu(ctx context.Context, user *models.User, req *types.GenerateMenuRequest) (*service.MenuResult, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MenuResult), args.Error(1)
}

func (m *MockMenuService) MonthlyGenerationCount(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}
