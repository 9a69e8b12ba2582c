package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Locale         string     `gorm:"size:8;not null;default:'en'" json:"locale"`
	Status         string     `gorm:"size:16;not null;default:'active'" json:"status"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

func (Subscriber) TableName() string {
	return "bbq_subscribers"
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
