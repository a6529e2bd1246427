package voice

import (
	"errors"
	"fmt"

	"github.com/usestring/gvoice-mcp/pkg/loginform"
)

var (
	// ErrUnexpectedResponse matches every *APIError.
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrLoginFormMissing matches a *ScrapeError for an absent login form.
	ErrLoginFormMissing = errors.New("login form missing")
	// ErrMissingSessionCookie is returned when both login rounds succeed but
	// the service did not issue a gvx cookie.
	ErrMissingSessionCookie = errors.New("missing gvx cookie")
	// ErrNotAuthenticated is returned by settings calls made without a session.
	ErrNotAuthenticated = errors.New("not authenticated: no gvx cookie")
	// ErrMalformedResponse is returned when a settings payload cannot be read.
	ErrMalformedResponse = errors.New("malformed settings response")
	// ErrInvalidCredentials is returned for an empty username or password.
	ErrInvalidCredentials = errors.New("username and password are required")
	// ErrNilPhone is returned by SetPhoneState for a nil phone.
	ErrNilPhone = errors.New("phone is required")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected response: %s %s: %s: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("unexpected response: %s %s: %s", e.Method, e.URL, e.Status)
}

// Is reports whether target is ErrUnexpectedResponse.
func (e *APIError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

// ScrapeError reports a login form that could not be scraped from a login
// page. Occurrence is 1 for the username form and 2 for the re-rendered
// password form.
type ScrapeError struct {
	Occurrence int
	Err        error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("login form (occurrence %d): %v", e.Occurrence, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoginFormMissing and the form was absent
// rather than present but unusable.
func (e *ScrapeError) Is(target error) bool {
	return target == ErrLoginFormMissing && errors.Is(e.Err, loginform.ErrFormNotFound)
}
