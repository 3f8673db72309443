package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laudos-api/config"
)

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		env        string
		origins    string
		origin     string
		wantNil    bool
		wantHeader string
	}{
		{name: "configured origin allowed", env: config.EnvProduction, origins: "https://app.example.com", origin: "https://app.example.com", wantHeader: "https://app.example.com"},
		{name: "unknown origin rejected", env: config.EnvProduction, origins: "https://app.example.com", origin: "https://evil.example.com"},
		{name: "development allows any origin", env: config.EnvDevelopment, origin: "http://localhost:3000", wantHeader: "*"},
		{name: "production without origins disables cors", env: config.EnvProduction, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			cfg.App.Env = tt.env
			cfg.App.CORSOrigins = tt.origins

			mw := corsMiddleware(cfg)
			if tt.wantNil {
				assert.Nil(t, mw)
				return
			}
			require.NotNil(t, mw)

			r := gin.New()
			r.Use(mw)
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	var cfg config.Config
	cfg.App.Env = config.EnvProduction

	_, err := NewApp(t.Context(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
