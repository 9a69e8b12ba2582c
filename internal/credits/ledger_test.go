package credits

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testScene = "bbq_menu_generation"

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, opts ...Option) (*Service, *gorm.DB) {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	return NewService(NewGormStore(db), opts...), db
}

func grant(t *testing.T, s *Service, userID uuid.UUID, credits int64) *models.CreditTransaction {
	t.Helper()
	entry, err := s.CreateCredit(context.Background(), Grant{UserID: userID, Credits: credits, Scene: models.ScenePayment})
	require.NoError(t, err)
	return entry
}

func TestCreateAndConsume(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	entry := grant(t, s, user, 10)
	assert.Equal(t, int64(10), entry.RemainingCredits)
	assert.Equal(t, models.TransactionGrant, entry.TransactionType)

	receipt, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 3, Scene: testScene})
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.Remaining)
	require.Len(t, receipt.Entries, 1)
	assert.Equal(t, int64(-3), receipt.Entries[0].Credits)
	assert.Equal(t, entry.ID, *receipt.Entries[0].SourceID)

	balance, err := s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance)
}

func TestRemainingCreditsUnknownUser(t *testing.T) {
	s, _ := newTestService(t)
	balance, err := s.RemainingCredits(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestInvalidAmounts(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 0, Scene: models.SceneGift})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: -1, Scene: testScene})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestInsufficientCreditsWritesNothing(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	user := uuid.New()
	grant(t, s, user, 2)

	_, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 3, Scene: testScene})
	require.ErrorIs(t, err, ErrInsufficientCredits)

	var insufficient *InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(3), insufficient.Requested)
	assert.Equal(t, int64(2), insufficient.Available)

	var count int64
	require.NoError(t, db.Model(&models.CreditTransaction{}).Where("user_id = ?", user).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	balance, err := s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)
}

func TestConsumeDrawsSoonestExpiryFirst(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, _ := newTestService(t, WithClock(clock.Now))
	ctx := context.Background()
	user := uuid.New()

	never, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 5, Scene: models.ScenePayment})
	require.NoError(t, err)
	clock.Advance(time.Second)
	late := clock.Now().Add(48 * time.Hour)
	lateGrant, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 2, Scene: models.SceneAward, ExpiresAt: &late})
	require.NoError(t, err)
	clock.Advance(time.Second)
	soon := clock.Now().Add(time.Hour)
	soonGrant, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 2, Scene: models.SceneAward, ExpiresAt: &soon})
	require.NoError(t, err)

	receipt, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 5, Scene: testScene})
	require.NoError(t, err)
	require.Len(t, receipt.Allocations, 3)
	assert.Equal(t, soonGrant.ID, receipt.Allocations[0].GrantID)
	assert.Equal(t, int64(2), receipt.Allocations[0].Credits)
	assert.Equal(t, lateGrant.ID, receipt.Allocations[1].GrantID)
	assert.Equal(t, int64(2), receipt.Allocations[1].Credits)
	assert.Equal(t, never.ID, receipt.Allocations[2].GrantID)
	assert.Equal(t, int64(1), receipt.Allocations[2].Credits)
	assert.Equal(t, int64(4), receipt.Remaining)
}

func TestExpiredGrantsLeaveBalance(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, _ := newTestService(t, WithClock(clock.Now))
	ctx := context.Background()
	user := uuid.New()

	expiry := clock.Now().Add(time.Hour)
	_, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 3, Scene: models.SceneAward, ExpiresAt: &expiry})
	require.NoError(t, err)
	grant(t, s, user, 1)

	// partially used grant that later expires
	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 2, Scene: testScene})
	require.NoError(t, err)

	balance, err := s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)

	clock.Advance(2 * time.Hour)
	balance, err = s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), balance)

	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 2, Scene: testScene})
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestGrantAlreadyExpiredDoesNotRaiseSnapshot(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, _ := newTestService(t, WithClock(clock.Now))
	past := clock.Now().Add(-time.Minute)

	entry, err := s.CreateCredit(context.Background(), Grant{UserID: uuid.New(), Credits: 4, Scene: models.SceneAward, ExpiresAt: &past})
	require.NoError(t, err)
	assert.Zero(t, entry.RemainingCredits)
}

func TestRefundRestoresBalance(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	user := uuid.New()
	grant(t, s, user, 1)
	grant(t, s, user, 1)

	receipt, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 2, Scene: testScene})
	require.NoError(t, err)
	require.Len(t, receipt.Allocations, 2)

	refunds, err := s.Refund(ctx, receipt, "generation failed")
	require.NoError(t, err)
	require.Len(t, refunds, 2)
	for _, r := range refunds {
		assert.Equal(t, models.SceneRefund, r.TransactionScene)
		assert.Equal(t, int64(1), r.Credits)
	}
	assert.Equal(t, int64(2), refunds[1].RemainingCredits)

	balance, err := s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)

	none, err := s.Refund(ctx, nil, "noop")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWelcomeCreditsGrantedOnce(t *testing.T) {
	s, _ := newTestService(t, WithWelcomeCredits(3))
	ctx := context.Background()
	user := uuid.New()

	first, err := s.GrantWelcomeCredits(ctx, user, "pit@example.com")
	require.NoError(t, err)
	assert.True(t, first.Granted)
	assert.Equal(t, int64(3), first.CreditsGranted)
	assert.Equal(t, int64(3), first.CurrentCredits)

	second, err := s.GrantWelcomeCredits(ctx, user, "pit@example.com")
	require.NoError(t, err)
	assert.False(t, second.Granted)
	assert.Equal(t, int64(3), second.CurrentCredits)

	// spent everything; the bonus is still not granted twice
	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 3, Scene: testScene})
	require.NoError(t, err)
	third, err := s.GrantWelcomeCredits(ctx, user, "pit@example.com")
	require.NoError(t, err)
	assert.False(t, third.Granted)
	assert.Zero(t, third.CurrentCredits)
}

func TestWelcomeCreditsIgnoreOtherGifts(t *testing.T) {
	s, _ := newTestService(t, WithWelcomeCredits(3))
	ctx := context.Background()
	user := uuid.New()

	_, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 1, Scene: models.SceneGift, Description: "goodwill"})
	require.NoError(t, err)
	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 1, Scene: testScene})
	require.NoError(t, err)

	result, err := s.GrantWelcomeCredits(ctx, user, "pit@example.com")
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(3), result.CurrentCredits)

	entries, _, err := s.History(ctx, user, 1, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].Metadata[WelcomeFlag])

	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 3, Scene: testScene})
	require.NoError(t, err)
	again, err := s.GrantWelcomeCredits(ctx, user, "pit@example.com")
	require.NoError(t, err)
	assert.False(t, again.Granted)
}

func TestWelcomeCreditsSkippedWithBalance(t *testing.T) {
	s, _ := newTestService(t)
	user := uuid.New()
	grant(t, s, user, 7)

	result, err := s.GrantWelcomeCredits(context.Background(), user, "")
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, int64(7), result.CurrentCredits)
}

func TestWelcomeCreditsConcurrent(t *testing.T) {
	s, _ := newTestService(t)
	user := uuid.New()

	var granted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.GrantWelcomeCredits(context.Background(), user, "pit@example.com")
			if assert.NoError(t, err) && res.Granted {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), granted.Load())
	balance, err := s.RemainingCredits(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultWelcomeCredits), balance)
}

func TestConcurrentConsumeNeverOverdraws(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()
	user := uuid.New()
	grant(t, s, user, 5)

	var ok, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 1, Scene: testScene})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrInsufficientCredits):
				insufficient.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), ok.Load())
	assert.Equal(t, int32(15), insufficient.Load())

	balance, err := s.RemainingCredits(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, balance)

	var consumed int64
	require.NoError(t, db.Model(&models.CreditTransaction{}).
		Where("user_id = ? AND transaction_type = ?", user, models.TransactionConsume).
		Count(&consumed).Error)
	assert.Equal(t, int64(5), consumed)
}

func TestHistoryNewestFirst(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, _ := newTestService(t, WithClock(clock.Now))
	ctx := context.Background()
	user := uuid.New()

	for i := 0; i < 3; i++ {
		grant(t, s, user, int64(i+1))
		clock.Advance(time.Minute)
	}
	_, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 1, Scene: testScene})
	require.NoError(t, err)

	entries, total, err := s.History(ctx, user, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TransactionConsume, entries[0].TransactionType)
	assert.Equal(t, int64(3), entries[1].Credits)

	entries, _, err = s.History(ctx, user, 2, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[1].Credits)

	// out-of-range limits fall back to the default page size
	entries, _, err = s.History(ctx, user, 0, 1000)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSummary(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	user := uuid.New()
	grant(t, s, user, 6)
	_, err := s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 4, Scene: testScene})
	require.NoError(t, err)

	summary, err := s.Summary(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Remaining: 2, TotalGranted: 6, TotalConsumed: 4}, summary)
}

func TestUsersDoNotShareBalances(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	grant(t, s, alice, 2)

	_, err := s.ConsumeCredits(ctx, Consumption{UserID: bob, Credits: 1, Scene: testScene})
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	balance, err := s.RemainingCredits(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)
}

type failingStore struct {
	Store
	err error
}

func (f *failingStore) Transaction(ctx context.Context, userID uuid.UUID, fn func(Store) error) error {
	return f.err
}

func (f *failingStore) GrantBalances(ctx context.Context, userID uuid.UUID, now time.Time) ([]GrantBalance, error) {
	return nil, f.err
}

func (f *failingStore) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.CreditTransaction, int64, error) {
	return nil, 0, f.err
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, errors.New("redis: connection refused")
}

func TestStoreFailureIsLedgerUnavailable(t *testing.T) {
	s := NewService(&failingStore{err: errors.New("database is locked")})
	ctx := context.Background()
	user := uuid.New()

	_, err := s.RemainingCredits(ctx, user)
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
	_, err = s.ConsumeCredits(ctx, Consumption{UserID: user, Credits: 1, Scene: testScene})
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
	assert.NotErrorIs(t, err, ErrInsufficientCredits)
	_, _, err = s.History(ctx, user, 1, 10)
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}

func TestLockFailureIsLedgerUnavailable(t *testing.T) {
	s, _ := newTestService(t, WithLocker(failingLocker{}))
	_, err := s.CreateCredit(context.Background(), Grant{UserID: uuid.New(), Credits: 1, Scene: models.SceneGift})
	assert.ErrorIs(t, err, ErrLedgerUnavailable)
}
