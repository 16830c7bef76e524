package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelova/canvashare/config"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "utils-test-secret")
	config.Load()
}

func TestTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	userID := uuid.New()
	token, err := GenerateToken(userID, "me@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "me@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken(uuid.New(), "me@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	loadTestConfig(t)

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)

	_, err = ParseToken("")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateToken(uuid.New(), "me@example.com", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseToken(tampered)
	assert.Error(t, err)
}
