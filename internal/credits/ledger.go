// Package credits implements the append-only credit ledger. A user's balance
// is always derived from the log: the sum over active, unexpired grants of
// what has not yet been drawn from them.
package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/metrics"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultWelcomeCredits = 3

// Grant describes credits to add.
type Grant struct {
	UserID      uuid.UUID
	UserEmail   string
	Credits     int64
	Scene       string
	Description string
	ExpiresAt   *time.Time
	Metadata    map[string]interface{}
}

// Consumption describes credits to spend in a usage scene.
type Consumption struct {
	UserID      uuid.UUID
	UserEmail   string
	Credits     int64
	Scene       string
	Description string
	Metadata    map[string]interface{}
}

// Allocation is the part of a consumption drawn from one grant.
type Allocation struct {
	GrantID   uuid.UUID
	Credits   int64
	ExpiresAt *time.Time
}

// Receipt is the result of a successful consumption.
type Receipt struct {
	UserID      uuid.UUID
	Scene       string
	Credits     int64
	Entries     []models.CreditTransaction
	Allocations []Allocation
	Remaining   int64
}

// WelcomeResult reports the outcome of GrantWelcomeCredits.
type WelcomeResult struct {
	Granted        bool  `json:"granted"`
	CreditsGranted int64 `json:"credits_granted"`
	CurrentCredits int64 `json:"current_credits"`
}

// Summary aggregates a user's ledger.
type Summary struct {
	Remaining     int64 `json:"remaining"`
	TotalGranted  int64 `json:"total_granted"`
	TotalConsumed int64 `json:"total_consumed"`
}

// Service applies the accounting rules on top of a Store.
type Service struct {
	store          Store
	locker         Locker
	logger         *zap.Logger
	now            func() time.Time
	welcomeCredits int64
}

type Option func(*Service)

func WithLocker(l Locker) Option { return func(s *Service) { s.locker = l } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock overrides time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithWelcomeCredits(n int64) Option { return func(s *Service) { s.welcomeCredits = n } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:          store,
		locker:         NewMemoryLocker(),
		logger:         zap.NewNop(),
		now:            time.Now,
		welcomeCredits: DefaultWelcomeCredits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// withUser runs fn while holding the user's lock inside a store transaction.
func (s *Service) withUser(ctx context.Context, op string, userID uuid.UUID, fn func(Store) error) error {
	unlock, err := s.locker.Lock(ctx, userID.String())
	if err != nil {
		metrics.LedgerErrors.WithLabelValues(op).Inc()
		return unavailable("lock", err)
	}
	defer unlock()

	err = s.store.Transaction(ctx, userID, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientCredits), errors.Is(err, ErrInvalidAmount):
		return err
	case errors.Is(err, ErrLedgerUnavailable):
		metrics.LedgerErrors.WithLabelValues(op).Inc()
		return err
	default:
		metrics.LedgerErrors.WithLabelValues(op).Inc()
		return unavailable("transaction", err)
	}
}

func balanceOf(grants []GrantBalance) int64 {
	var total int64
	for _, g := range grants {
		total += g.Remaining()
	}
	return total
}

// RemainingCredits returns the spendable balance. It is never negative.
func (s *Service) RemainingCredits(ctx context.Context, userID uuid.UUID) (int64, error) {
	grants, err := s.store.GrantBalances(ctx, userID, s.clock())
	if err != nil {
		metrics.LedgerErrors.WithLabelValues("balance").Inc()
		return 0, unavailable("balance", err)
	}
	return balanceOf(grants), nil
}

// CreateCredit appends a grant. The entry's RemainingCredits is the balance
// right after it.
func (s *Service) CreateCredit(ctx context.Context, g Grant) (*models.CreditTransaction, error) {
	if g.Credits <= 0 {
		return nil, ErrInvalidAmount
	}
	var entry *models.CreditTransaction
	err := s.withUser(ctx, "grant", g.UserID, func(tx Store) error {
		var err error
		entry, err = s.appendGrant(ctx, tx, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("credits granted",
		zap.String("user_id", g.UserID.String()),
		zap.String("scene", g.Scene),
		zap.Int64("credits", g.Credits),
		zap.Int64("remaining", entry.RemainingCredits))
	return entry, nil
}

func (s *Service) appendGrant(ctx context.Context, tx Store, g Grant) (*models.CreditTransaction, error) {
	now := s.clock()
	grants, err := tx.GrantBalances(ctx, g.UserID, now)
	if err != nil {
		return nil, unavailable("balance", err)
	}
	remaining := balanceOf(grants)
	if g.ExpiresAt == nil || g.ExpiresAt.After(now) {
		remaining += g.Credits
	}

	var expiresAt *time.Time
	if g.ExpiresAt != nil {
		t := g.ExpiresAt.UTC()
		expiresAt = &t
	}
	entry := &models.CreditTransaction{
		ID:               uuid.New(),
		TransactionNo:    newTransactionNo(),
		UserID:           g.UserID,
		UserEmail:        g.UserEmail,
		TransactionType:  models.TransactionGrant,
		TransactionScene: g.Scene,
		Credits:          g.Credits,
		RemainingCredits: remaining,
		Status:           models.CreditActive,
		ExpiresAt:        expiresAt,
		Description:      g.Description,
		Metadata:         g.Metadata,
		CreatedAt:        now,
	}
	if err := tx.Append(ctx, entry); err != nil {
		return nil, unavailable("append", err)
	}
	metrics.CreditsGranted.WithLabelValues(g.Scene).Add(float64(g.Credits))
	return entry, nil
}

// ConsumeCredits spends c.Credits, drawing from the grants that expire first.
// With too small a balance it returns an *InsufficientCreditsError and writes
// nothing.
func (s *Service) ConsumeCredits(ctx context.Context, c Consumption) (*Receipt, error) {
	if c.Credits <= 0 {
		return nil, ErrInvalidAmount
	}
	receipt := &Receipt{UserID: c.UserID, Scene: c.Scene, Credits: c.Credits}
	err := s.withUser(ctx, "consume", c.UserID, func(tx Store) error {
		now := s.clock()
		grants, err := tx.GrantBalances(ctx, c.UserID, now)
		if err != nil {
			return unavailable("balance", err)
		}
		available := balanceOf(grants)
		if available < c.Credits {
			return &InsufficientCreditsError{Requested: c.Credits, Available: available}
		}

		need, remaining := c.Credits, available
		var entries []*models.CreditTransaction
		for _, g := range grants {
			if need == 0 {
				break
			}
			take := min(g.Remaining(), need)
			if take == 0 {
				continue
			}
			need -= take
			remaining -= take
			source := g.Grant.ID
			entries = append(entries, &models.CreditTransaction{
				ID:               uuid.New(),
				TransactionNo:    newTransactionNo(),
				UserID:           c.UserID,
				UserEmail:        c.UserEmail,
				TransactionType:  models.TransactionConsume,
				TransactionScene: c.Scene,
				Credits:          -take,
				RemainingCredits: remaining,
				SourceID:         &source,
				Status:           models.CreditActive,
				Description:      c.Description,
				Metadata:         c.Metadata,
				CreatedAt:        now,
			})
			receipt.Allocations = append(receipt.Allocations, Allocation{
				GrantID:   source,
				Credits:   take,
				ExpiresAt: g.Grant.ExpiresAt,
			})
		}
		if err := tx.Append(ctx, entries...); err != nil {
			return unavailable("append", err)
		}
		for _, e := range entries {
			receipt.Entries = append(receipt.Entries, *e)
		}
		receipt.Remaining = remaining
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCredits) {
			metrics.InsufficientCredits.Inc()
		}
		return nil, err
	}

	metrics.CreditsConsumed.WithLabelValues(c.Scene).Add(float64(c.Credits))
	s.logger.Info("credits consumed",
		zap.String("user_id", c.UserID.String()),
		zap.String("scene", c.Scene),
		zap.Int64("credits", c.Credits),
		zap.Int64("remaining", receipt.Remaining))
	return receipt, nil
}

// Refund returns the credits of a receipt as REFUND grants, one per
// allocation, keeping each source grant's expiry.
func (s *Service) Refund(ctx context.Context, r *Receipt, reason string) ([]*models.CreditTransaction, error) {
	if r == nil || len(r.Allocations) == 0 {
		return nil, nil
	}
	var refunds []*models.CreditTransaction
	err := s.withUser(ctx, "refund", r.UserID, func(tx Store) error {
		for _, a := range r.Allocations {
			entry, err := s.appendGrant(ctx, tx, Grant{
				UserID:      r.UserID,
				Credits:     a.Credits,
				Scene:       models.SceneRefund,
				Description: reason,
				ExpiresAt:   a.ExpiresAt,
				Metadata:    map[string]interface{}{"refund_of": a.GrantID.String(), "scene": r.Scene},
			})
			if err != nil {
				return err
			}
			refunds = append(refunds, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("credits refunded",
		zap.String("user_id", r.UserID.String()),
		zap.Int64("credits", r.Credits),
		zap.String("reason", reason))
	return refunds, nil
}

// WelcomeFlag marks the metadata of welcome grants. Other GIFT grants do not
// count towards the once-only check.
const WelcomeFlag = "welcome"

// GrantWelcomeCredits gives a new user the welcome bonus once. It is a no-op
// when the user already has a balance or has received a welcome grant.
func (s *Service) GrantWelcomeCredits(ctx context.Context, userID uuid.UUID, email string) (*WelcomeResult, error) {
	result := &WelcomeResult{}
	err := s.withUser(ctx, "welcome", userID, func(tx Store) error {
		grants, err := tx.GrantBalances(ctx, userID, s.clock())
		if err != nil {
			return unavailable("balance", err)
		}
		current := balanceOf(grants)
		result.CurrentCredits = current
		if current > 0 {
			return nil
		}
		welcomed, err := tx.Count(ctx, Filter{UserID: userID, Type: models.TransactionGrant, Scene: models.SceneGift, Flag: WelcomeFlag})
		if err != nil {
			return unavailable("count", err)
		}
		if welcomed > 0 {
			return nil
		}

		entry, err := s.appendGrant(ctx, tx, Grant{
			UserID:      userID,
			UserEmail:   email,
			Credits:     s.welcomeCredits,
			Scene:       models.SceneGift,
			Description: fmt.Sprintf("Welcome bonus: %d free credits", s.welcomeCredits),
			Metadata:    map[string]interface{}{WelcomeFlag: true},
		})
		if err != nil {
			return err
		}
		result.Granted = true
		result.CreditsGranted = s.welcomeCredits
		result.CurrentCredits = entry.RemainingCredits
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Granted {
		s.logger.Info("welcome credits granted", zap.String("user_id", userID.String()), zap.Int64("credits", result.CreditsGranted))
	}
	return result, nil
}

// History returns ledger entries newest first. page starts at 1.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.CreditTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, total, err := s.store.List(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		metrics.LedgerErrors.WithLabelValues("history").Inc()
		return nil, 0, unavailable("history", err)
	}
	return entries, total, nil
}

func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	remaining, err := s.RemainingCredits(ctx, userID)
	if err != nil {
		return nil, err
	}
	granted, err := s.store.Sum(ctx, Filter{UserID: userID, Type: models.TransactionGrant})
	if err != nil {
		return nil, unavailable("sum", err)
	}
	consumed, err := s.store.Sum(ctx, Filter{UserID: userID, Type: models.TransactionConsume})
	if err != nil {
		return nil, unavailable("sum", err)
	}
	return &Summary{Remaining: remaining, TotalGranted: granted, TotalConsumed: -consumed}, nil
}

// newTransactionNo returns a time-ordered identifier.
func newTransactionNo() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
