package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the variables LoadConfig reads so host settings do not leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CI", "ENV", "APP_ENV", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSL_MODE", "JWT_SECRET", "REDIS_URL", "REDIS_DB", "AI_API_KEY",
		"AI_API_KEY_FILE", "WELCOME_CREDITS", "GENERATION_COST", "MAX_ADMIN_GRANT",
		"LEDGER_LOCK", "ADMIN_EMAILS", "JWT_EXPIRY",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func writeSecret(t *testing.T, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(os.Getenv("SECRETS_DIR"), name), []byte(value+"\n"), 0o600))
}

func TestLoadConfigTestDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(3), cfg.WelcomeCredits)
	assert.Equal(t, int64(1), cfg.GenerationCost)
	assert.Equal(t, int64(10000), cfg.MaxAdminGrant)
	assert.Equal(t, "memory", cfg.LedgerLock)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "images/catalog.toml", cfg.ImageCatalogKey)
}

func TestLoadConfigSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "test")
	writeSecret(t, "jwt_secret", "from-secret")
	writeSecret(t, "db_password", "pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "pw", cfg.DBPassword)

	// environment variables win over secrets
	t.Setenv("JWT_SECRET", "from-env")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoadConfigProductionValidation(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	writeSecret(t, "jwt_secret", "prod-secret")
	writeSecret(t, "db_user", "bbq")
	writeSecret(t, "db_password", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "bbqmenu")
	t.Setenv("AI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Contains(t, cfg.PostgresDSN(), "user=bbq")
}

func TestLoadConfigInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "test")

	t.Setenv("WELCOME_CREDITS", "three")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "WELCOME_CREDITS")

	t.Setenv("WELCOME_CREDITS", "")
	t.Setenv("LEDGER_LOCK", "etcd")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "LEDGER_LOCK")

	t.Setenv("LEDGER_LOCK", "")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestLoadConfigDotEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "dev-secret")
	os.Unsetenv("ADMIN_EMAILS")
	t.Cleanup(func() { os.Unsetenv("ADMIN_EMAILS") })

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADMIN_EMAILS=pitmaster@example.com, chef@example.com\n"), 0o600))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"pitmaster@example.com", "chef@example.com"}, cfg.AdminEmails)
	assert.True(t, cfg.IsAdmin("Chef@Example.com"))
	assert.False(t, cfg.IsAdmin(""))
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Test, ParseEnvironment("TEST"))
	assert.Equal(t, CI, ParseEnvironment("ci"))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
