package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/api"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter([]string{"https://bbqmenu.ai"}, api.Dependencies{Logger: zap.NewNop()})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/health", http.StatusOK, "healthy"},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/api/v1/images/categories", http.StatusOK, "beef"},
		{"/nowhere", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Origin", "https://bbqmenu.ai")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			if tt.status == http.StatusOK {
				assert.Equal(t, "https://bbqmenu.ai", w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
