package voice

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/usestring/gvoice-mcp/pkg/loginform"
)

// LoginState tracks progress through the login handshake. It is diagnostic
// only; IsLoggedIn is decided by the session cookie.
type LoginState int

const (
	StateAnonymous LoginState = iota
	StateAwaitingUsername
	StateAwaitingPassword
	StateAuthenticated
	StateFailed
)

func (s LoginState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAwaitingUsername:
		return "awaiting_username"
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoginState(%d)", int(s))
	}
}

// loginRound is one scrape-and-submit exchange of the handshake. The service
// renders the password form only after the username has been posted, so the
// second round scrapes a different document than the first.
type loginRound struct {
	occurrence int
	awaiting   LoginState
	step       string
	creds      func(loginform.Credentials) loginform.Credentials
}

var loginRounds = []loginRound{
	{
		occurrence: 1,
		awaiting:   StateAwaitingUsername,
		step:       "username",
		creds: func(c loginform.Credentials) loginform.Credentials {
			return loginform.Credentials{Username: c.Username}
		},
	},
	{
		occurrence: 2,
		awaiting:   StateAwaitingPassword,
		step:       "password",
		creds: func(c loginform.Credentials) loginform.Credentials {
			return c
		},
	},
}

// State reports where the last login attempt got to.
func (c *Client) State() LoginState {
	return c.state
}

// Login runs the two-round login handshake. The first round posts only the
// username into the served form; the second round, scraped from the page the
// first submit returned, posts the username and password. In both rounds a
// credential fills only an input the server left empty.
//
// Any earlier session is discarded first, so success means this handshake
// issued the session cookie; a 2xx on the final submit is not enough.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	creds := loginform.Credentials{Username: username, Password: password}

	c.ResetSession()
	resp, err := c.do(ctx, http.MethodGet, c.loginURL, "", nil)
	if err != nil {
		c.state = StateFailed
		return fmt.Errorf("loading login page: %w", err)
	}

	for _, round := range loginRounds {
		c.state = round.awaiting

		form, err := loginform.Extract(resp.body, resp.url, c.formSelector)
		if err != nil {
			c.state = StateFailed
			return &ScrapeError{Occurrence: round.occurrence, Err: err}
		}

		payload := form.Payload(round.creds(creds), c.fieldNames)
		slog.Debug("submitting login form",
			slog.String("step", round.step),
			slog.String("action", form.Action),
			slog.Int("fields", len(payload)),
		)

		resp, err = c.submit(ctx, form, payload)
		if err != nil {
			c.state = StateFailed
			return fmt.Errorf("submitting %s: %w", round.step, err)
		}
	}

	if !c.IsLoggedIn() {
		c.state = StateFailed
		return ErrMissingSessionCookie
	}
	c.state = StateAuthenticated
	slog.Info("logged in", slog.String("username", username))
	return nil
}

// submit posts or gets the payload to the form's action.
func (c *Client) submit(ctx context.Context, form *loginform.Form, payload loginform.Payload) (*response, error) {
	if form.Method == http.MethodGet {
		target, err := url.Parse(form.Action)
		if err != nil {
			return nil, fmt.Errorf("parsing form action: %w", err)
		}
		target.RawQuery = payload.Encode()
		return c.do(ctx, http.MethodGet, target.String(), "", nil)
	}
	return c.do(ctx, http.MethodPost, form.Action,
		"application/x-www-form-urlencoded", strings.NewReader(payload.Encode()))
}

// IsLoggedIn reports whether the session cookie is present. It makes no
// network call.
func (c *Client) IsLoggedIn() bool {
	_, ok := c.sessionToken()
	return ok
}

// Logout asks the service to end the session. Local cookies are left as the
// service's response set them; call ResetSession to drop them.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, c.voiceBaseURL+"/logout", "", nil); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	c.state = StateAnonymous
	return nil
}

// sessionToken returns the gvx cookie value. An empty value counts as absent.
func (c *Client) sessionToken() (string, bool) {
	u, err := url.Parse(c.voiceBaseURL)
	if err != nil {
		return "", false
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}
