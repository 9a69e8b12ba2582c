package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionGrant   TransactionType = "GRANT"
	TransactionConsume TransactionType = "CONSUME"
)

// Well-known transaction scenes. Consumptions carry the usage scene instead,
// for example "bbq_menu_generation".
const (
	SceneGift    = "GIFT"
	SceneAward   = "AWARD"
	ScenePayment = "PAYMENT"
	SceneRefund  = "REFUND"
)

// CreditStatus marks whether a grant still counts toward the balance.
type CreditStatus string

const (
	CreditActive  CreditStatus = "ACTIVE"
	CreditExpired CreditStatus = "EXPIRED"
)

// CreditTransaction is one append-only ledger entry. Grants carry positive
// credits, consumptions negative credits and the grant they draw from in
// SourceID. RemainingCredits is the balance right after the entry was written
// and is kept for auditing only.
type CreditTransaction struct {
	ID               uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	TransactionNo    string          `gorm:"size:64;not null;uniqueIndex" json:"transaction_no"`
	UserID           uuid.UUID       `gorm:"type:varchar(36);not null;index:idx_credit_user_type" json:"user_id"`
	UserEmail        string          `gorm:"size:255" json:"user_email,omitempty"`
	TransactionType  TransactionType `gorm:"size:16;not null;index:idx_credit_user_type" json:"transaction_type"`
	TransactionScene string          `gorm:"size:64;not null" json:"transaction_scene"`
	Credits          int64           `gorm:"not null" json:"credits"`
	RemainingCredits int64           `gorm:"not null" json:"remaining_credits"`
	SourceID         *uuid.UUID      `gorm:"type:varchar(36);index" json:"source_id,omitempty"`
	Status           CreditStatus    `gorm:"size:16;not null;default:'ACTIVE'" json:"status"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	Description      string          `gorm:"type:text" json:"description,omitempty"`
	Metadata         JSONMap         `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

func (t *CreditTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the entry has passed its expiry at now.
func (t *CreditTransaction) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !t.ExpiresAt.After(now)
}
