package voice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/usestring/gvoice-mcp/pkg/loginform"
)

// Service endpoints.
const (
	DefaultLoginURL     = "https://accounts.google.com/ServiceLogin?service=grandcentral&continue=https://www.google.com/voice/m?initialauth&followup=https://www.google.com/voice/m?initialauth"
	DefaultVoiceBaseURL = "https://www.google.com/voice/m"
)

// Transport defaults.
const (
	DefaultTimeout          = 30 * time.Second
	DefaultMaxResponseBytes = 4 << 20
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "gvx"

// Client is a Google Voice session. It owns its cookie jar.
type Client struct {
	loginURL     string
	voiceBaseURL string
	formSelector string
	fieldNames   loginform.FieldNames
	maxBodyBytes int64
	httpClient   *http.Client
	state        LoginState
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithLoginURL sets the accounts URL that serves the first login form.
func WithLoginURL(loginURL string) Option {
	return func(c *Client) {
		c.loginURL = loginURL
	}
}

// WithVoiceBaseURL sets the base URL of the mobile voice site. The session
// cookie is looked up for this URL.
func WithVoiceBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.voiceBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied; if it has
// no cookie jar, a fresh one is attached to the copy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		cp := *httpClient
		cp.Transport = newLoggingTransport(cp.Transport)
		c.httpClient = &cp
	}
}

// WithTimeout sets the overall timeout of each HTTP exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithFormSelector sets the CSS or XPath selector of the login form.
func WithFormSelector(selector string) Option {
	return func(c *Client) {
		c.formSelector = selector
	}
}

// WithCredentialFields sets the input names that receive the username and
// password.
func WithCredentialFields(names loginform.FieldNames) Option {
	return func(c *Client) {
		c.fieldNames = names
	}
}

// WithMaxResponseBytes caps how much of a response body is read.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a new client with an empty session.
func New(opts ...Option) *Client {
	c := &Client{
		loginURL:     DefaultLoginURL,
		voiceBaseURL: DefaultVoiceBaseURL,
		formSelector: loginform.DefaultSelector,
		fieldNames:   loginform.DefaultFieldNames,
		maxBodyBytes: DefaultMaxResponseBytes,
		httpClient: &http.Client{
			Transport: newLoggingTransport(nil),
			Timeout:   DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		c.httpClient.Jar = newJar()
	}
	return c
}

// Jar returns the cookie jar holding the session.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.Jar
}

// ResetSession discards every cookie by replacing the jar.
func (c *Client) ResetSession() {
	c.httpClient.Jar = newJar()
	c.state = StateAnonymous
}

func newJar() http.CookieJar {
	// cookiejar.New never returns an error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// response is a fully read 2xx response.
type response struct {
	statusCode int
	url        *url.URL
	body       []byte
}

// do performs a request and reads the body. Non-2xx statuses are returned
// as *APIError.
func (c *Client) do(ctx context.Context, method, rawURL, contentType string, body io.Reader) (*response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.parseError(req, resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, apiErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(data)) > c.maxBodyBytes {
		return nil, fmt.Errorf("reading response: body exceeds %d bytes", c.maxBodyBytes)
	}

	slog.Debug("HTTP request completed",
		slog.String("method", method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &response{
		statusCode: resp.StatusCode,
		url:        resp.Request.URL,
		body:       data,
	}, nil
}

// parseError builds an APIError from a non-2xx response.
func (c *Client) parseError(req *http.Request, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	endpoint := *req.URL
	endpoint.RawQuery = ""
	return &APIError{
		Method:     req.Method,
		URL:        endpoint.String(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    strings.TrimSpace(string(snippet)),
	}
}
