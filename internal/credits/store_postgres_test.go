package credits

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// Without an in-process lock the advisory lock alone must keep two
// instances from overdrawing.
func TestPostgresAdvisoryLockPreventsOverdraw(t *testing.T) {
	db := testhelpers.NewPostgresDB(t)
	ctx := context.Background()
	s := NewService(NewGormStore(db), WithLocker(noopLocker{}))
	user := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: user, Name: "Pit", Email: "pit@example.com", PasswordHash: "x"}).Error)

	_, err := s.CreateCredit(ctx, Grant{UserID: user, Credits: 1, Scene: models.SceneGift})
	require.NoError(t, err)

	var ok, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
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
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(1), insufficient.Load())

	summary, err := s.Summary(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Remaining: 0, TotalGranted: 1, TotalConsumed: 1}, summary)
}

func TestPostgresLedgerIsAppendOnly(t *testing.T) {
	db := testhelpers.NewPostgresDB(t)
	s := NewService(NewGormStore(db))
	user := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: user, Name: "Pit", Email: "pit2@example.com", PasswordHash: "x"}).Error)

	entry, err := s.CreateCredit(context.Background(), Grant{UserID: user, Credits: 2, Scene: models.SceneGift})
	require.NoError(t, err)

	err = db.Model(&models.CreditTransaction{}).Where("id = ?", entry.ID).Update("credits", 200).Error
	assert.Error(t, err)
	err = db.Delete(&models.CreditTransaction{}, "id = ?", entry.ID).Error
	assert.Error(t, err)
}
