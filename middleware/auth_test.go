package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelova/canvashare/utils"
)

func newProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	loadMiddlewareConfig(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", AuthRequired(), func(ctx *gin.Context) {
		id, ok := UserID(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newProtectedRouter(t)
	userID := uuid.New()
	token, err := utils.GenerateToken(userID, "me@example.com", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"case-insensitive scheme", "bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.header)
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	r := newProtectedRouter(t)
	token, err := utils.GenerateToken(uuid.New(), "me@example.com", -time.Minute)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsRevokedToken(t *testing.T) {
	r := newProtectedRouter(t)
	token, err := utils.GenerateToken(uuid.New(), "me@example.com", time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	utils.BlacklistToken(token, time.Now().Add(time.Hour))
	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
