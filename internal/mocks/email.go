package mocks

import (
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockEmailService is a mock implementation of service.IEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendNewsletterWelcome(sub *models.Subscriber) error {
	args := m.Called(sub)
	return args.Error(0)
}
