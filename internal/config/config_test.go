package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/gvoice-mcp/pkg/loginform"
	"github.com/usestring/gvoice-mcp/pkg/voice"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GV_LOGIN_URL", "GV_VOICE_BASE_URL", "GV_USERNAME", "HTTP_CLIENT_TIMEOUT_MS", "LOG_COMPRESS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, voice.DefaultLoginURL, cfg.LoginURL)
	assert.Equal(t, voice.DefaultVoiceBaseURL, cfg.VoiceBaseURL)
	assert.Equal(t, loginform.DefaultSelector, cfg.LoginFormSelector)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, voice.DefaultTimeout, cfg.HTTPClientTimeout)
	assert.Equal(t, DefaultAccountName, cfg.DefaultAccount)
	assert.True(t, cfg.LogCompress)
	assert.Len(t, cfg.ClientOptions(), 5)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GV_VOICE_BASE_URL", "http://127.0.0.1:9999/voice/m")
	t.Setenv("HTTP_CLIENT_TIMEOUT_MS", "1500")
	t.Setenv("ACCOUNT_CACHE_MAX_ITEMS", "not-a-number")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()

	assert.Equal(t, "http://127.0.0.1:9999/voice/m", cfg.VoiceBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, 16, cfg.AccountCacheMaxItems)
	assert.False(t, cfg.LogCompress)
}
