package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:   config.Test,
		ServerHost:    "127.0.0.1",
		ServerPort:    "0",
		CORSOrigins:   []string{"http://localhost:3000"},
		DBDriver:      "sqlite",
		SQLitePath:    ":memory:",
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AIBaseURL:     "http://127.0.0.1:1",
		AITimeout:     time.Second,
		LedgerLock:    "memory",
		MaxAdminGrant: 10000,
		// WelcomeCredits is left at zero to use the ledger default.
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	for _, path := range []string{"/health", "/health/ready"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	body := `{"name":"Sam","email":"sam@example.com","password":"low-and-slow"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"credits":3`)
}

func TestNewUnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "mysql"
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := New(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
