package database

import (
	"context"
	"testing"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: "file::memory:"}
	db, raw, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer raw.Close()

	require.NoError(t, RunMigrations(db, zap.NewNop()))
	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	user := models.User{Name: "Pit Master", Email: "pit@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotZero(t, user.ID)

	assert.NoError(t, raw.HealthCheck(context.Background()))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, _, err := Open(&config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported")
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "0001_users_and_credits.sql", entries[0].Name())
}
