package mocks

import (
	"context"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock implementation of service.LLMClient
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) GenerateMenu(ctx context.Context, req *types.GenerateMenuRequest, count int) ([]service.GeneratedRecipe, error) {
	args := m.Called(ctx, req, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.GeneratedRecipe), args.Error(1)
}
