package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, rate.Limit(10), cfg.RateLimitAPI)
	assert.Equal(t, 8*time.Second, cfg.ChatTick)
	assert.Equal(t, 12*time.Second, cfg.AmbientTick)
	assert.Equal(t, 20, cfg.ChatRetention)
	assert.Equal(t, "comuno.app/watch/", cfg.LinkBase)
	assert.Equal(t, domain.LocaleES, cfg.Locale)
	assert.Equal(t, "Tú", cfg.HostName)
	assert.Equal(t, domain.ModeHostControl, cfg.Mode)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_API", "3")
	t.Setenv("RATE_LIMIT_WS", "-1")
	t.Setenv("CHAT_TICK_SECONDS", "2")
	t.Setenv("AMBIENT_TICK_SECONDS", "abc")
	t.Setenv("CHAT_RETENTION", "50")
	t.Setenv("LOCALE", "en")
	t.Setenv("HOST_NAME", "  Ana  ")
	t.Setenv("PARTY_MODE", "ambient")

	cfg := LoadFromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, rate.Limit(3), cfg.RateLimitAPI)
	assert.Equal(t, rate.Limit(5), cfg.RateLimitWS, "invalid values keep the default")
	assert.Equal(t, 2*time.Second, cfg.ChatTick)
	assert.Equal(t, domain.AmbientTickInterval, cfg.AmbientTick)
	assert.Equal(t, 50, cfg.ChatRetention)
	assert.Equal(t, domain.LocaleEN, cfg.Locale)
	assert.Equal(t, "Ana", cfg.HostName)
	assert.Equal(t, domain.ModeAmbient, cfg.Mode)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LINK_BASE=watch.test/\n"), 0o600))
	// restored by t.Setenv once the test ends
	t.Setenv("LINK_BASE", "")
	require.NoError(t, os.Unsetenv("LINK_BASE"))

	cfg := Load(path)

	assert.Equal(t, "watch.test/", cfg.LinkBase)
}

func TestOriginAllowed(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		origin   string
		expected bool
	}{
		{"http://localhost:8080", true},
		{"http://localhost:3000", true},
		{"", true},
		{"http://evil.com", false},
	}
	for _, tc := range tests {
		if got := cfg.OriginAllowed(tc.origin); got != tc.expected {
			t.Errorf("OriginAllowed(%s) = %v, expected %v", tc.origin, got, tc.expected)
		}
	}

	cfg.AllowedOrigins = []string{"*"}
	assert.True(t, cfg.OriginAllowed("http://evil.com"))
}

func TestSetupLogging(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	SetupLogging("silent", &buf)
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	SetupLogging("warn", &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	SetupLogging("nonsense", &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
