package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	db     *gorm.DB
	email  IEmailService
	logger *zap.Logger
}

func NewSubscriptionService(db *gorm.DB, email IEmailService, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{db: db, email: email, logger: logger}
}

// Subscribe adds or reactivates a subscriber and sends the welcome mail for
// new or returning subscribers. Subscribing twice is not an error.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string, loc units.Locale) (*models.Subscriber, error) {
	email = normalizeEmail(email)
	var sub models.Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	switch {
	case err == nil:
		if sub.Status == models.SubscriberActive {
			return &sub, nil
		}
		sub.Status = models.SubscriberActive
		sub.Locale = string(loc)
		sub.UnsubscribedAt = nil
		if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
			return nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.Subscriber{Email: email, Locale: string(loc), Status: models.SubscriberActive}
		if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("failed to create subscriber: %w", err)
		}
	default:
		return nil, err
	}

	if s.email != nil {
		welcome := sub
		go func() {
			if err := s.email.SendNewsletterWelcome(&welcome); err != nil {
				s.logger.Warn("failed to send newsletter welcome", zap.String("email", welcome.Email), zap.Error(err))
			}
		}()
	}
	return &sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&models.Subscriber{}).
		Where("email = ? AND status = ?", normalizeEmail(email), models.SubscriberActive).
		Updates(map[string]interface{}{"status": models.SubscriberUnsubscribed, "unsubscribed_at": now})
	if res.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
