// Package accounts keeps one voice session per named account and serializes
// the calls made against each.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/usestring/gvoice-mcp/pkg/voice"
)

var (
	// ErrAccountNotFound is returned for a name the registry does not hold.
	ErrAccountNotFound = errors.New("account not found")
	// ErrPhoneNotFound is returned when a phone id is not in the settings.
	ErrPhoneNotFound = errors.New("phone not found")
)

// Account is a voice.Client plus the last settings fetched through it.
// A voice.Client is not safe for concurrent use, so every method holds mu.
type Account struct {
	name string

	mu        sync.Mutex
	client    *voice.Client
	settings  *voice.Settings
	raw       json.RawMessage
	fetchedAt time.Time
}

// Status is a point-in-time view of an account.
type Status struct {
	Account   string `json:"account"`
	LoggedIn  bool   `json:"logged_in"`
	State     string `json:"state"`
	Phones    int    `json:"phones"`
	FetchedAt string `json:"fetched_at,omitempty"`
}

func newAccount(name string, client *voice.Client) *Account {
	return &Account{name: name, client: client}
}

func (a *Account) Name() string {
	return a.name
}

// Login runs the login handshake. Cached settings from an earlier session are
// dropped.
func (a *Account) Login(ctx context.Context, username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clearSettings()
	return a.client.Login(ctx, username, password)
}

// Logout ends the session with the service. With reset the cookie jar is
// discarded as well, so IsLoggedIn reports false even if the service left
// the cookie in place.
func (a *Account) Logout(ctx context.Context, reset bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.client.Logout(ctx)
	if reset {
		a.client.ResetSession()
	}
	a.clearSettings()
	return err
}

// IsLoggedIn reports whether the session cookie is present.
func (a *Account) IsLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.client.IsLoggedIn()
}

func (a *Account) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := Status{
		Account:  a.name,
		LoggedIn: a.client.IsLoggedIn(),
		State:    a.client.State().String(),
	}
	if a.settings != nil {
		st.Phones = a.settings.Len()
		st.FetchedAt = a.fetchedAt.UTC().Format(time.RFC3339)
	}
	return st
}

// Phones returns copies of the account's phones, fetching settings when
// none are cached or refresh is set.
func (a *Account) Phones(ctx context.Context, refresh bool) ([]voice.Phone, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureSettings(ctx, refresh); err != nil {
		return nil, err
	}
	phones := a.settings.Phones()
	out := make([]voice.Phone, 0, len(phones))
	for _, p := range phones {
		out = append(out, *p)
	}
	return out, nil
}

// SettingsJSON returns the raw settings payload, fetching it when none is
// cached or refresh is set.
func (a *Account) SettingsJSON(ctx context.Context, refresh bool) (json.RawMessage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureSettings(ctx, refresh); err != nil {
		return nil, err
	}
	return a.raw, nil
}

// SetPhone enables or disables a phone by id. The toggle resends the phone
// as last fetched; refresh fetches first so the resent record is current.
func (a *Account) SetPhone(ctx context.Context, id int64, enable, refresh bool) (voice.Phone, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureSettings(ctx, refresh); err != nil {
		return voice.Phone{}, err
	}
	phone, ok := a.settings.Phone(id)
	if !ok {
		return voice.Phone{}, fmt.Errorf("%w: %d", ErrPhoneNotFound, id)
	}
	if err := a.client.SetPhoneState(ctx, phone, enable); err != nil {
		return voice.Phone{}, err
	}
	return *phone, nil
}

func (a *Account) ensureSettings(ctx context.Context, refresh bool) error {
	if a.settings != nil && !refresh {
		return nil
	}

	raw, err := a.client.FetchSettingsJSON(ctx)
	if err != nil {
		return err
	}
	var snap voice.SettingsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("%w: %w", voice.ErrMalformedResponse, err)
	}

	a.settings = voice.BuildSettings(&snap)
	a.raw = raw
	a.fetchedAt = time.Now()
	return nil
}

func (a *Account) clearSettings() {
	a.settings = nil
	a.raw = nil
	a.fetchedAt = time.Time{}
}
