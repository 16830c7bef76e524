package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelova/canvashare/config"
)

// loadMiddlewareConfig pins the env every middleware test depends on; the
// config loader caches the first values it sees, so all tests must agree.
func loadMiddlewareConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "2")
	config.Load()
}

func newLimitedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	loadMiddlewareConfig(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/content", RateLimit(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func post(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/content", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitThrottlesMutations(t *testing.T) {
	r := newLimitedRouter(t)

	// Two per minute means a burst of one.
	w := post(r, "198.51.100.7:4000")
	require.Equal(t, http.StatusOK, w.Code)

	w = post(r, "198.51.100.7:4000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitIsPerClientIP(t *testing.T) {
	r := newLimitedRouter(t)

	w := post(r, "198.51.100.8:4000")
	require.Equal(t, http.StatusOK, w.Code)
	w = post(r, "198.51.100.8:4000")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different client still has its own budget.
	w = post(r, "198.51.100.9:4000")
	assert.Equal(t, http.StatusOK, w.Code)
}
