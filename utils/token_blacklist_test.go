package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBlacklist(t *testing.T) {
	loadTestConfig(t)

	token := "blacklist-test-" + time.Now().Format("150405.000000000")
	assert.False(t, IsTokenBlacklisted(token))

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
}

func TestTokenBlacklistExpiredEntry(t *testing.T) {
	loadTestConfig(t)

	token := "expired-test-" + time.Now().Format("150405.000000000")
	BlacklistToken(token, time.Now().Add(-time.Minute))
	assert.False(t, IsTokenBlacklisted(token))
}
