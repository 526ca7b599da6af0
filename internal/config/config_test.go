package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DATABASE_URL", "REDIS_URL",
		"REQUIRE_CONTACT_EMAIL", "SMTP_HOST", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.RequireContactEmail)
	assert.False(t, cfg.NotifierEnabled())
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REQUIRE_CONTACT_EMAIL", "true")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://patternwork.app , https://www.patternwork.app ")

	cfg := Load()

	assert.True(t, cfg.RequireContactEmail)
	assert.True(t, cfg.NotifierEnabled())
	assert.Equal(t, []string{"https://patternwork.app", "https://www.patternwork.app"}, cfg.AllowedOrigins)
}

func TestGetEnvBoolBadValueFallsBack(t *testing.T) {
	t.Setenv("REQUIRE_CONTACT_EMAIL", "definitely")
	cfg := Load()
	assert.False(t, cfg.RequireContactEmail)
}
