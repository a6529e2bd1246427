// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/gvoice-mcp/internal/query"
	"github.com/usestring/gvoice-mcp/pkg/loginform"
	"github.com/usestring/gvoice-mcp/pkg/voice"
)

// DefaultAccountName is the account used when a tool call names none.
const DefaultAccountName = "default"

// Config holds all configuration for the MCP server.
type Config struct {
	LoginURL          string        // GV_LOGIN_URL, default voice.DefaultLoginURL
	VoiceBaseURL      string        // GV_VOICE_BASE_URL, default "https://www.google.com/voice/m"
	LoginFormSelector string        // GV_LOGIN_FORM_SELECTOR, default "form#gaia_loginform"
	Username          string        // GV_USERNAME, default "" (no login at startup)
	Password          string        // GV_PASSWORD
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms (30s)
	MaxResponseBytes  int           // MAX_RESPONSE_BYTES, default 4 MiB

	// Session registry
	AccountCacheMaxItems int    // ACCOUNT_CACHE_MAX_ITEMS, default 16
	DefaultAccount       string // GV_DEFAULT_ACCOUNT, default "default"

	// Tool output limits
	QueryMaxResults int // QUERY_MAX_RESULTS, default 100

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		LoginURL:          getEnvString("GV_LOGIN_URL", voice.DefaultLoginURL),
		VoiceBaseURL:      getEnvString("GV_VOICE_BASE_URL", voice.DefaultVoiceBaseURL),
		LoginFormSelector: getEnvString("GV_LOGIN_FORM_SELECTOR", loginform.DefaultSelector),
		Username:          getEnvString("GV_USERNAME", ""),
		Password:          getEnvString("GV_PASSWORD", ""),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", int(voice.DefaultTimeout/time.Millisecond)),
		MaxResponseBytes:  getEnvInt("MAX_RESPONSE_BYTES", voice.DefaultMaxResponseBytes),

		AccountCacheMaxItems: getEnvInt("ACCOUNT_CACHE_MAX_ITEMS", 16),
		DefaultAccount:       getEnvString("GV_DEFAULT_ACCOUNT", DefaultAccountName),

		QueryMaxResults: getEnvInt("QUERY_MAX_RESULTS", query.DefaultMaxResults),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// ClientOptions converts the transport settings into voice client options.
func (c *Config) ClientOptions() []voice.Option {
	return []voice.Option{
		voice.WithLoginURL(c.LoginURL),
		voice.WithVoiceBaseURL(c.VoiceBaseURL),
		voice.WithFormSelector(c.LoginFormSelector),
		voice.WithTimeout(c.HTTPClientTimeout),
		voice.WithMaxResponseBytes(int64(c.MaxResponseBytes)),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
