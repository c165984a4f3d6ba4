package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "write", cfg.Notes.GuestAccess)
	assert.Equal(t, []string{"new", "me", "history", "api"}, cfg.Notes.ForbiddenAliases)
	assert.Equal(t, 100000, cfg.Notes.MaxDocumentLength)
	assert.Equal(t, "read", cfg.Notes.DefaultEveryoneAccess)
	assert.Equal(t, "write", cfg.Notes.DefaultLoggedInAccess)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ViewDedupeWindow)
	assert.False(t, cfg.Events.NatsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("GUEST_ACCESS", "create")
	t.Setenv("FORBIDDEN_ALIASES", " login, , logout ")
	t.Setenv("MAX_DOCUMENT_LENGTH", "42")
	t.Setenv("VIEW_DEDUPE_WINDOW", "30s")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("OTEL_ENABLED", "not-a-bool")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "create", cfg.Notes.GuestAccess)
	assert.Equal(t, []string{"login", "logout"}, cfg.Notes.ForbiddenAliases)
	assert.Equal(t, 42, cfg.Notes.MaxDocumentLength)
	assert.Equal(t, 30*time.Second, cfg.Cache.ViewDedupeWindow)
	assert.True(t, cfg.Events.NatsEnabled)
	assert.False(t, cfg.Telemetry.OtelEnabled)
}
