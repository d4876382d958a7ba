package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port string

	// Security
	AllowedOrigins []string

	// Rate Limiting
	RateLimitAPI rate.Limit
	RateLimitWS  rate.Limit

	// Logging
	LogLevel string

	// Watch party
	ChatTick      time.Duration
	AmbientTick   time.Duration
	ChatRetention int
	LinkBase      string
	Locale        domain.Locale
	HostName      string
	Mode          domain.ControlMode
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:8080", "http://localhost:3000"},
		RateLimitAPI:   10,
		RateLimitWS:    5,
		LogLevel:       "info", // Options: debug, info, warn, error, silent
		ChatTick:       domain.ChatTickInterval,
		AmbientTick:    domain.AmbientTickInterval,
		ChatRetention:  domain.ChatRetention,
		LinkBase:       domain.DefaultLinkBase,
		Locale:         domain.LocaleES,
		HostName:       domain.DefaultHostName,
		Mode:           domain.ModeHostControl,
	}
}

// Load reads .env when present and then the environment.
// A missing .env file is not an error.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	// Server
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	// Security
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	// Rate Limiting
	if val, ok := positiveInt("RATE_LIMIT_API"); ok {
		cfg.RateLimitAPI = rate.Limit(val)
	}
	if val, ok := positiveInt("RATE_LIMIT_WS"); ok {
		cfg.RateLimitWS = rate.Limit(val)
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	// Watch party
	if val, ok := positiveInt("CHAT_TICK_SECONDS"); ok {
		cfg.ChatTick = time.Duration(val) * time.Second
	}
	if val, ok := positiveInt("AMBIENT_TICK_SECONDS"); ok {
		cfg.AmbientTick = time.Duration(val) * time.Second
	}
	if val, ok := positiveInt("CHAT_RETENTION"); ok {
		cfg.ChatRetention = val
	}
	if base := os.Getenv("LINK_BASE"); base != "" {
		cfg.LinkBase = base
	}
	if locale := os.Getenv("LOCALE"); locale != "" {
		cfg.Locale = domain.ParseLocale(locale)
	}
	if name := strings.TrimSpace(os.Getenv("HOST_NAME")); name != "" {
		cfg.HostName = name
	}
	if mode := os.Getenv("PARTY_MODE"); mode != "" {
		cfg.Mode = domain.ParseControlMode(mode)
	}

	return cfg
}

func positiveInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// OriginAllowed reports whether origin may open a snapshot stream.
// An empty origin is a same-origin request.
func (c *Config) OriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}
