package mocks

import (
	"context"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCreditLedger is a mock implementation of service.CreditLedger
type MockCreditLedger struct {
	mock.Mock
}

func (m *MockCreditLedger) RemainingCredits(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditLedger) CreateCredit(ctx context.Context, g credits.Grant) (*models.CreditTransaction, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreditTransaction), args.Error(1)
}

func (m *MockCreditLedger) ConsumeCredits(ctx context.Context, c credits.Consumption) (*credits.Receipt, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.Receipt), args.Error(1)
}

func (m *MockCreditLedger) Refund(ctx context.Context, r *credits.Receipt, reason string) ([]*models.CreditTransaction, error) {
	args := m.Called(ctx, r, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CreditTransaction), args.Error(1)
}

func (m *MockCreditLedger) GrantWelcomeCredits(ctx context.Context, userID uuid.UUID, email string) (*credits.WelcomeResult, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.WelcomeResult), args.Error(1)
}

func (m *MockCreditLedger) History(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.CreditTransaction, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.CreditTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockCreditLedger) Summary(ctx context.Context, userID uuid.UUID) (*credits.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.Summary), args.Error(1)
}
