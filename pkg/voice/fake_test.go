package voice

import (
	"testing"

	"github.com/usestring/gvoice-mcp/pkg/voice/voicetest"
)

const (
	testUser     = voicetest.Username
	testPassword = voicetest.Password
	testToken    = voicetest.Token

	settingsFixture = voicetest.SettingsJSON
)

type fakeVoice struct {
	*voicetest.Server
}

func newFakeVoice(t *testing.T) *fakeVoice {
	t.Helper()
	return &fakeVoice{Server: voicetest.NewServer(t)}
}

func (f *fakeVoice) client(opts ...Option) *Client {
	base := []Option{
		WithHTTPClient(f.Client()),
		WithLoginURL(f.LoginURL()),
		WithVoiceBaseURL(f.VoiceBaseURL()),
	}
	return New(append(base, opts...)...)
}
