package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/mocks"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/testhelpers"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscribeLifecycle(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	email := new(mocks.MockEmailService)
	sent := make(chan *models.Subscriber, 4)
	email.On("SendNewsletterWelcome", mock.Anything).
		Run(func(args mock.Arguments) { sent <- args.Get(0).(*models.Subscriber) }).
		Return(nil)
	svc := service.NewSubscriptionService(db, email, zap.NewNop())
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, " Fan@Example.com ", units.German)
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", sub.Email)
	assert.Equal(t, "de", sub.Locale)
	assert.Equal(t, models.SubscriberActive, sub.Status)
	select {
	case got := <-sent:
		assert.Equal(t, "fan@example.com", got.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email not sent")
	}

	again, err := svc.Subscribe(ctx, "fan@example.com", units.English)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, again.ID)
	assert.Equal(t, "de", again.Locale)

	require.NoError(t, svc.Unsubscribe(ctx, "FAN@example.com"))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, "fan@example.com"), service.ErrNotFound)
	assert.ErrorIs(t, svc.Unsubscribe(ctx, "nobody@example.com"), service.ErrNotFound)

	back, err := svc.Subscribe(ctx, "fan@example.com", units.English)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, back.ID)
	assert.Equal(t, "en", back.Locale)
	assert.Nil(t, back.UnsubscribedAt)
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email not sent on resubscribe")
	}
	assert.Empty(t, sent)
}
