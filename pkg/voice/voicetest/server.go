// Package voicetest provides an in-process stand-in for the Google Voice
// login and settings endpoints.
//
// The server walks the same two-form login as the real service: GET
// /ServiceLogin serves the username form, POST /signin/identifier serves the
// password form, and POST /signin/challenge sets the gvx cookie and
// redirects to /voice/m. POST /voice/m/x answers settings reads and phone
// toggles when the body carries the issued token.
package voicetest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Credentials accepted by the server and the token it issues.
const (
	Username = "alice@example.com"
	Password = "s3cret"
	Token    = "gvx-token-123"
)

const responsePrefix = ")]}',"

// UsernamePage is the first login form.
const UsernamePage = `<html><body>
<form id="gaia_loginform" action="/signin/identifier" method="post">
  <input type="hidden" name="GALX" value="csrf-1">
  <input type="email" name="Email" value="">
  <input type="submit" name="signIn" value="Next">
</form>
</body></html>`

// PasswordPage is the re-rendered form served after the username round.
const PasswordPage = `<html><body>
<form id="gaia_loginform" action="/signin/challenge" method="post">
  <input type="hidden" name="GALX" value="csrf-2">
  <input type="hidden" name="Email" value="` + Username + `">
  <input type="password" name="Passwd" value="">
  <input type="submit" name="signIn" value="Sign in">
</form>
</body></html>`

// SettingsJSON is the default settings payload: phones 1, 4 and 8 with 2 and
// 8 on the exclusion list.
const SettingsJSON = `{
  "settings_response": {
    "user_preferences": {
      "default_call_settings": {"disabled_forwarding_id": [2, 8]},
      "forwarding": [
        {"id": 1, "name": "Phone 1", "type": 2, "phone_number": "+15555551212", "behavior_on_redirect": 0, "policy_bitmask": 0, "sms_enabled": true},
        {"id": 4, "name": "Phone 2", "type": 1, "phone_number": "+15555550000", "behavior_on_redirect": 1, "policy_bitmask": 3, "sms_enabled": false},
        {"id": 8, "name": "Google Talk", "type": 9, "phone_number": "example@gmail.com", "behavior_on_redirect": 0, "policy_bitmask": 0, "sms_enabled": false}
      ]
    }
  },
  "app_version": 13
}`

// Request is a request as the server received it.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
}

// Server is a fake Google Voice service.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []Request
	status     map[string]int
	pages      map[string]string
	settings   string
	raw        string
	omitCookie bool
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		status:   make(map[string]int),
		pages:    make(map[string]string),
		settings: SettingsJSON,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ServiceLogin", func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, UsernamePage)
	})
	mux.HandleFunc("POST /signin/identifier", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("GALX") != "csrf-1" || r.PostForm.Get("Email") != Username {
			http.Error(w, "bad identifier submit", http.StatusBadRequest)
			return
		}
		s.writePage(w, r, PasswordPage)
	})
	mux.HandleFunc("POST /signin/challenge", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("GALX") != "csrf-2" || r.PostForm.Get("Passwd") != Password {
			http.Error(w, "bad challenge submit", http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		omit := s.omitCookie
		s.mu.Unlock()
		if !omit {
			http.SetCookie(w, &http.Cookie{Name: "gvx", Value: Token, Path: "/"})
		}
		http.Redirect(w, r, "/voice/m", http.StatusFound)
	})
	mux.HandleFunc("GET /voice/m", func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, "<html><body>inbox</body></html>")
	})
	mux.HandleFunc("GET /voice/m/logout", func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, "<html><body>bye</body></html>")
	})
	mux.HandleFunc("POST /voice/m/x", s.handleSettings)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Server.Close)
	return s
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if code := s.statusFor(r.URL.Path); code != 0 {
		w.WriteHeader(code)
		return
	}
	body, _ := io.ReadAll(r.Body)
	if string(body) != fmt.Sprintf(`{gvx: "%s"}`, Token) {
		http.Error(w, "missing session", http.StatusForbidden)
		return
	}

	s.mu.Lock()
	payload, raw := s.settings, s.raw
	s.mu.Unlock()
	if raw != "" {
		_, _ = io.WriteString(w, raw)
		return
	}
	if r.URL.Query().Has("fp_id0") {
		payload = `{"ok":true}`
	}
	_, _ = io.WriteString(w, responsePrefix+"\n"+payload)
}

// LoginURL is the login entry point on this server.
func (s *Server) LoginURL() string {
	return s.URL + "/ServiceLogin?service=grandcentral"
}

// VoiceBaseURL is the mobile voice base URL on this server.
func (s *Server) VoiceBaseURL() string {
	return s.URL + "/voice/m"
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     string(body),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, def string) {
	if code := s.statusFor(r.URL.Path); code != 0 {
		w.WriteHeader(code)
		return
	}
	s.mu.Lock()
	page, ok := s.pages[r.URL.Path]
	s.mu.Unlock()
	if !ok {
		page = def
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

func (s *Server) statusFor(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[path]
}

// SetStatus makes every request to path answer with code and no body.
func (s *Server) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[path] = code
}

// SetPage replaces the HTML served at path.
func (s *Server) SetPage(path, page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = page
}

// SetSettings replaces the settings payload sent after the response prefix.
func (s *Server) SetSettings(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = payload
}

// SetRawSettings makes the settings endpoint send body as is, without the
// response prefix.
func (s *Server) SetRawSettings(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = body
}

// SetOmitCookie makes a successful password round skip the gvx cookie.
func (s *Server) SetOmitCookie(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitCookie = omit
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Paths returns "METHOD /path" for each request received so far.
func (s *Server) Paths() []string {
	var out []string
	for _, r := range s.Requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// Reset forgets the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}
