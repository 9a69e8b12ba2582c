package credits

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GrantBalance is a spendable grant together with what has been drawn from it.
type GrantBalance struct {
	Grant    models.CreditTransaction
	Consumed int64
}

// Remaining is never negative for a ledger written by Service.
func (g GrantBalance) Remaining() int64 {
	if r := g.Grant.Credits - g.Consumed; r > 0 {
		return r
	}
	return 0
}

// Filter selects ledger entries for aggregation. Zero fields do not filter.
type Filter struct {
	UserID   uuid.UUID
	Type     models.TransactionType
	Scene    string
	Status   models.CreditStatus
	ActiveAt *time.Time // only entries without expiry or expiring after ActiveAt
	Flag     string     // only entries whose metadata sets this key to true
}

// Store persists ledger entries. Transaction runs fn with a Store bound to a
// single database transaction that is serialized per user.
type Store interface {
	Transaction(ctx context.Context, userID uuid.UUID, fn func(Store) error) error
	Append(ctx context.Context, entries ...*models.CreditTransaction) error
	// GrantBalances returns the user's active, unexpired grants in the order
	// they are drawn from: soonest expiry first, never-expiring last, then
	// by creation time.
	GrantBalances(ctx context.Context, userID uuid.UUID, now time.Time) ([]GrantBalance, error)
	Sum(ctx context.Context, f Filter) (int64, error)
	Count(ctx context.Context, f Filter) (int64, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.CreditTransaction, int64, error)
}

// GormStore implements Store on Postgres or SQLite.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, userID uuid.UUID, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryKey(userID)).Error; err != nil {
				return err
			}
		}
		return fn(&GormStore{db: tx})
	})
}

func advisoryKey(userID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("credits:"))
	h.Write(userID[:])
	return int64(h.Sum64())
}

func (s *GormStore) Append(ctx context.Context, entries ...*models.CreditTransaction) error {
	for _, e := range entries {
		if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
			return err
		}
	}
	return nil
}

type grantRow struct {
	models.CreditTransaction `gorm:"embedded"`
	Consumed                 int64
}

func (s *GormStore) GrantBalances(ctx context.Context, userID uuid.UUID, now time.Time) ([]GrantBalance, error) {
	var rows []grantRow
	err := s.db.WithContext(ctx).
		Table("credit_transactions AS g").
		Select(`g.*, CAST(COALESCE((
			SELECT -SUM(c.credits) FROM credit_transactions c
			WHERE c.source_id = g.id AND c.transaction_type = ?
		), 0) AS BIGINT) AS consumed`, models.TransactionConsume).
		Where("g.user_id = ? AND g.transaction_type = ? AND g.status = ?", userID, models.TransactionGrant, models.CreditActive).
		Where("(g.expires_at IS NULL OR g.expires_at > ?)", now).
		Order("CASE WHEN g.expires_at IS NULL THEN 1 ELSE 0 END, g.expires_at, g.created_at, g.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]GrantBalance, 0, len(rows))
	for _, r := range rows {
		out = append(out, GrantBalance{Grant: r.CreditTransaction, Consumed: r.Consumed})
	}
	return out, nil
}

func (s *GormStore) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.CreditTransaction{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("transaction_type = ?", f.Type)
	}
	if f.Scene != "" {
		q = q.Where("transaction_scene = ?", f.Scene)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ActiveAt != nil {
		q = q.Where("(expires_at IS NULL OR expires_at > ?)", *f.ActiveAt)
	}
	if f.Flag != "" {
		// metadata is stored as compact JSON text
		q = q.Where("metadata LIKE ?", fmt.Sprintf(`%%"%s":true%%`, f.Flag))
	}
	return q
}

func (s *GormStore) Sum(ctx context.Context, f Filter) (int64, error) {
	var total int64
	err := s.filtered(ctx, f).Select("CAST(COALESCE(SUM(credits), 0) AS BIGINT)").Scan(&total).Error
	return total, err
}

func (s *GormStore) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	err := s.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (s *GormStore) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.CreditTransaction, int64, error) {
	var total int64
	if err := s.filtered(ctx, Filter{UserID: userID}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []models.CreditTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, transaction_no DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	return entries, total, err
}
