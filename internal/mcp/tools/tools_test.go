package tools

import (
	"context"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/gvoice-mcp/internal/accounts"
	"github.com/usestring/gvoice-mcp/internal/config"
	"github.com/usestring/gvoice-mcp/internal/query"
	"github.com/usestring/gvoice-mcp/pkg/voice"
	"github.com/usestring/gvoice-mcp/pkg/voice/voicetest"
)

func newTestDeps(t *testing.T) (*voicetest.Server, *Deps) {
	t.Helper()
	srv := voicetest.NewServer(t)
	reg, err := accounts.NewRegistry(4, func() *voice.Client {
		return voice.New(
			voice.WithHTTPClient(srv.Client()),
			voice.WithLoginURL(srv.LoginURL()),
			voice.WithVoiceBaseURL(srv.VoiceBaseURL()),
		)
	})
	require.NoError(t, err)
	return srv, &Deps{
		Accounts: reg,
		Config: &config.Config{
			Username:       voicetest.Username,
			Password:       voicetest.Password,
			DefaultAccount: "default",
		},
		Query: query.NewEngine(query.DefaultMaxResults),
	}
}

func login(t *testing.T, d *Deps) {
	t.Helper()
	_, out, err := ToolLogin(d)(context.Background(), nil, LoginInput{})
	require.NoError(t, err)
	require.True(t, out.LoggedIn)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected CodedError, got %v", err)
	assert.Equal(t, code, coded.Code)
}

func boolPtr(b bool) *bool { return &b }

func TestToolLogin_UsesConfiguredCredentials(t *testing.T) {
	_, d := newTestDeps(t)

	_, out, err := ToolLogin(d)(context.Background(), nil, LoginInput{})
	require.NoError(t, err)
	assert.Equal(t, LoginOutput{Account: "default", LoggedIn: true, State: "authenticated"}, out)
}

func TestToolLogin_NamedAccount(t *testing.T) {
	_, d := newTestDeps(t)

	_, out, err := ToolLogin(d)(context.Background(), nil, LoginInput{
		Account:  "work",
		Username: voicetest.Username,
		Password: voicetest.Password,
	})
	require.NoError(t, err)
	assert.Equal(t, "work", out.Account)
	assert.Equal(t, []string{"work"}, d.Accounts.Names())
}

func TestToolLogin_Failures(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		_, d := newTestDeps(t)
		d.Config.Username, d.Config.Password = "", ""

		_, _, err := ToolLogin(d)(context.Background(), nil, LoginInput{})
		requireCode(t, err, ErrCodeInvalidInput)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, d := newTestDeps(t)

		_, _, err := ToolLogin(d)(context.Background(), nil, LoginInput{
			Username: voicetest.Username,
			Password: "wrong",
		})
		requireCode(t, err, ErrCodeLoginFailed)
	})

	t.Run("login form missing", func(t *testing.T) {
		srv, d := newTestDeps(t)
		srv.SetPage("/ServiceLogin", "<html><body>maintenance</body></html>")

		_, _, err := ToolLogin(d)(context.Background(), nil, LoginInput{})
		requireCode(t, err, ErrCodeLoginFailed)
		assert.ErrorIs(t, err, voice.ErrLoginFormMissing)
	})

	t.Run("no session cookie", func(t *testing.T) {
		srv, d := newTestDeps(t)
		srv.SetOmitCookie(true)

		_, _, err := ToolLogin(d)(context.Background(), nil, LoginInput{})
		requireCode(t, err, ErrCodeLoginFailed)
		assert.ErrorIs(t, err, voice.ErrMissingSessionCookie)
	})
}

func TestToolListPhones(t *testing.T) {
	_, d := newTestDeps(t)
	login(t, d)
	ctx := context.Background()

	_, out, err := ToolListPhones(d)(ctx, nil, ListPhonesInput{})
	require.NoError(t, err)
	assert.Equal(t, "default", out.Account)
	assert.Len(t, out.Phones, 3)
	assert.Equal(t, 2, out.Enabled)
	assert.Equal(t, 1, out.Disabled)

	_, out, err = ToolListPhones(d)(ctx, nil, ListPhonesInput{State: "disabled"})
	require.NoError(t, err)
	require.Len(t, out.Phones, 1)
	assert.Equal(t, int64(8), out.Phones[0].ID)

	_, _, err = ToolListPhones(d)(ctx, nil, ListPhonesInput{State: "sometimes"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolListPhones_Errors(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		_, d := newTestDeps(t)

		_, _, err := ToolListPhones(d)(context.Background(), nil, ListPhonesInput{Account: "nobody"})
		requireCode(t, err, ErrCodeNotFound)
	})

	t.Run("logged out", func(t *testing.T) {
		srv, d := newTestDeps(t)
		d.Accounts.GetOrCreate("default")

		_, _, err := ToolListPhones(d)(context.Background(), nil, ListPhonesInput{})
		requireCode(t, err, ErrCodeNotAuthenticated)
		assert.Empty(t, srv.Requests())
	})

	t.Run("malformed settings", func(t *testing.T) {
		srv, d := newTestDeps(t)
		login(t, d)
		srv.SetRawSettings(")]}',\n{not json")

		_, _, err := ToolListPhones(d)(context.Background(), nil, ListPhonesInput{})
		requireCode(t, err, ErrCodeMalformedResponse)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv, d := newTestDeps(t)
		login(t, d)
		srv.SetStatus("/voice/m/x", http.StatusServiceUnavailable)

		_, _, err := ToolListPhones(d)(context.Background(), nil, ListPhonesInput{})
		requireCode(t, err, ErrCodeUpstream)
	})
}

func TestToolSetPhone(t *testing.T) {
	_, d := newTestDeps(t)
	login(t, d)
	ctx := context.Background()

	_, out, err := ToolSetPhone(d)(ctx, nil, SetPhoneInput{PhoneID: 8, Enabled: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, out.Phone.Enabled)
	assert.Equal(t, int64(8), out.Phone.ID)
	assert.NotEmpty(t, out.Hint)

	_, list, err := ToolListPhones(d)(ctx, nil, ListPhonesInput{State: "disabled"})
	require.NoError(t, err)
	assert.Empty(t, list.Phones)
}

func TestToolSetPhone_Errors(t *testing.T) {
	_, d := newTestDeps(t)
	login(t, d)
	ctx := context.Background()

	_, _, err := ToolSetPhone(d)(ctx, nil, SetPhoneInput{PhoneID: 1})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolSetPhone(d)(ctx, nil, SetPhoneInput{PhoneID: 2, Enabled: boolPtr(false)})
	requireCode(t, err, ErrCodeNotFound)
}

func TestToolQuerySettings(t *testing.T) {
	_, d := newTestDeps(t)
	login(t, d)
	ctx := context.Background()

	res, out, err := ToolQuerySettings(d)(ctx, nil, QuerySettingsInput{
		Expression: ".settings_response.user_preferences.forwarding[].id",
	})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(4), float64(8)}, out.Values)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"values":[1,4,8]}`, text.Text)

	_, _, err = ToolQuerySettings(d)(ctx, nil, QuerySettingsInput{Expression: ".[["})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolLogoutAndStatus(t *testing.T) {
	_, d := newTestDeps(t)
	login(t, d)
	ctx := context.Background()

	_, st, err := ToolStatus(d)(ctx, nil, StatusInput{})
	require.NoError(t, err)
	require.Len(t, st.Accounts, 1)
	assert.True(t, st.Accounts[0].LoggedIn)

	_, out, err := ToolLogout(d)(ctx, nil, LogoutInput{All: true, ResetCookies: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, out.LoggedOut)

	_, st, err = ToolStatus(d)(ctx, nil, StatusInput{Account: "default"})
	require.NoError(t, err)
	require.Len(t, st.Accounts, 1)
	assert.False(t, st.Accounts[0].LoggedIn)
	assert.Equal(t, "anonymous", st.Accounts[0].State)

	_, _, err = ToolStatus(d)(ctx, nil, StatusInput{Account: "nobody"})
	requireCode(t, err, ErrCodeNotFound)
}

func TestRegister_OutputSchemas(t *testing.T) {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0"}, nil)
	assert.NotPanics(t, func() {
		Register(srv, &Deps{})
	})
}
