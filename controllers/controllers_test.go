package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mbelova/canvashare/config"
	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/models"
)

// testSecret signs tokens for every test; the config loader caches the first
// value it sees, so all tests must agree on it.
const testSecret = "controllers-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("UPLOAD_MAX_SIZE_MB", "1")
	t.Setenv("UPLOAD_DIR", filepath.Join(os.TempDir(), "canvashare-test-uploads"))
	config.Load()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Content{},
		&models.Category{},
		&models.Tag{},
		&models.ContentCategory{},
		&models.ContentTag{},
		&models.Comment{},
		&models.Reaction{},
	))
	return db
}

// authAs injects an authenticated user without going through the JWT
// middleware, the way the handlers see it after AuthRequired.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, userID)
		ctx.Next()
	}
}

func performJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope is the uniform response body shape.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedContentRow(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) models.Content {
	t.Helper()
	content := models.Content{
		UserID:      userID,
		Title:       title,
		ContentText: "body of " + title,
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}
