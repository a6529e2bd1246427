package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/gvoice-mcp/internal/accounts"
	"github.com/usestring/gvoice-mcp/pkg/voice"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotAuthenticated  = "NOT_AUTHENTICATED"
	ErrCodeLoginFailed       = "LOGIN_FAILED"
	ErrCodeUpstream          = "UPSTREAM_ERROR"
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeTimeout           = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapVoiceError converts an error from a settings or logout call to a coded
// error.
func WrapVoiceError(err error) error {
	if err == nil {
		return nil
	}
	coded := classify(err, ErrCodeUpstream)
	slog.Warn("voice call failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

// WrapLoginError converts a login error to a coded error. Protocol failures
// during the handshake all map to LOGIN_FAILED.
func WrapLoginError(err error) error {
	if err == nil {
		return nil
	}
	coded := classify(err, ErrCodeLoginFailed)
	if coded.Code == ErrCodeUpstream || coded.Code == ErrCodeMalformedResponse {
		coded.Code = ErrCodeLoginFailed
	}
	slog.Warn("login failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

func classify(err error, fallback string) *CodedError {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var apiErr *voice.APIError
	var scrapeErr *voice.ScrapeError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
		return &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, voice.ErrNotAuthenticated):
		return &CodedError{Code: ErrCodeNotAuthenticated, Message: "no session; call gvoice_login first", Cause: err}
	case errors.Is(err, voice.ErrMalformedResponse):
		return &CodedError{Code: ErrCodeMalformedResponse, Message: "settings response could not be read", Cause: err}
	case errors.Is(err, accounts.ErrAccountNotFound), errors.Is(err, accounts.ErrPhoneNotFound):
		return &CodedError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, voice.ErrInvalidCredentials), errors.Is(err, voice.ErrNilPhone):
		return &CodedError{Code: ErrCodeInvalidInput, Message: err.Error()}
	case errors.As(err, &scrapeErr):
		return &CodedError{Code: ErrCodeLoginFailed, Message: fmt.Sprintf("login form missing (occurrence %d)", scrapeErr.Occurrence), Cause: err}
	case errors.Is(err, voice.ErrMissingSessionCookie):
		return &CodedError{Code: ErrCodeLoginFailed, Message: "service did not issue a session cookie", Cause: err}
	case errors.As(err, &apiErr):
		return &CodedError{Code: ErrCodeUpstream, Message: apiErr.Status, Cause: err}
	default:
		return &CodedError{Code: fallback, Message: err.Error(), Cause: err}
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
