package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/credits"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/mocks"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/testhelpers"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
)

const adminEmail = "admin@example.com"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := types.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	ledger *credits.Service
	auth   *service.AuthService
	llm    *mocks.MockLLMClient
}

// newTestServer wires the real services on an in-memory database. Only the
// model client is mocked.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	logger := zap.NewNop()
	ledger := credits.NewService(credits.NewGormStore(db), credits.WithLogger(logger))
	auth := service.NewAuthService(db, "api-test-secret-api-test-secret", time.Hour, ledger, logger)
	llm := new(mocks.MockLLMClient)
	cfg := &config.Config{AdminEmails: []string{adminEmail}, MaxAdminGrant: 10000}

	router := gin.New()
	RegisterRoutes(router, Dependencies{
		Config:        cfg,
		Logger:        logger,
		Auth:          auth,
		Ledger:        ledger,
		Menu:          service.NewMenuService(db, ledger, llm, nil, service.MenuConfig{GenerationCost: 1}, logger),
		Recipes:       service.NewRecipeService(db, logger),
		Shopping:      service.NewShoppingService(db, logger),
		Feedback:      service.NewFeedbackService(db, logger),
		Subscriptions: service.NewSubscriptionService(db, nil, logger),
	})
	return &testServer{router: router, db: db, ledger: ledger, auth: auth, llm: llm}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, s.router, method, path, token, body)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns its token.
func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Pit Master", "email": email, "password": "low-and-slow",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// generate runs one menu generation for token and returns the recipe ids.
func (s *testServer) generate(t *testing.T, token string) []string {
	t.Helper()
	s.llm.On("GenerateMenu", mock.Anything, mock.Anything, service.DefaultRecipeCount).
		Return(service.MockRecipes("en", 4), nil).Once()
	w := s.do(t, http.MethodPost, "/api/v1/bbq/generate-menu", token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.MenuResult
	decode(t, w, &result)
	ids := make([]string, 0, len(result.Recipes))
	for _, r := range result.Recipes {
		ids = append(ids, r.ID.String())
	}
	return ids
}
