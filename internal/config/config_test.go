package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"infobot-backend/internal/core"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_STORE", "SESSION_TTL", "ANSWER_BACKEND", "ENVIRONMENT", "TIMEZONE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "none", cfg.AnswerBackend)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, core.Development, cfg.Environment)
	assert.Equal(t, "/chat", cfg.RemoteAnswerPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("ANSWER_BACKEND", "http")
	t.Setenv("REMOTE_ANSWER_URL", "http://localhost:8000")
	t.Setenv("REMOTE_ANSWER_TIMEOUT", "not-a-duration")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "http", cfg.AnswerBackend)
	assert.Equal(t, 30*time.Second, cfg.RemoteAnswerTimeout)
	assert.True(t, cfg.Environment.IsProduction())
}
