package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/gvoice-mcp/pkg/voice"
)

// ClientFactory builds the client for a new account. Each call must return
// a client with its own cookie jar.
type ClientFactory func() *voice.Client

// Registry holds a bounded set of accounts. The least recently used account
// is dropped when the bound is reached; its cookies go with it.
type Registry struct {
	mu        sync.Mutex
	cache     *lru.Cache[string, *Account]
	newClient ClientFactory
	logins    singleflight.Group
}

// NewRegistry creates a registry holding at most maxItems accounts.
func NewRegistry(maxItems int, newClient ClientFactory) (*Registry, error) {
	c, err := lru.NewWithEvict(maxItems, func(name string, _ *Account) {
		slog.Info("account evicted", slog.String("account", name))
	})
	if err != nil {
		return nil, fmt.Errorf("creating account cache: %w", err)
	}
	return &Registry{cache: c, newClient: newClient}, nil
}

// Get returns the named account.
func (r *Registry) Get(name string) (*Account, bool) {
	return r.cache.Get(name)
}

// GetOrCreate returns the named account, creating an anonymous one if needed.
func (r *Registry) GetOrCreate(name string) *Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acct, ok := r.cache.Get(name); ok {
		return acct
	}
	acct := newAccount(name, r.newClient())
	r.cache.Add(name, acct)
	return acct
}

// Lookup is Get returning ErrAccountNotFound for a missing name.
func (r *Registry) Lookup(name string) (*Account, error) {
	acct, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return acct, nil
}

// Remove drops the named account without logging it out.
func (r *Registry) Remove(name string) bool {
	return r.cache.Remove(name)
}

// Names returns the account names in sorted order.
func (r *Registry) Names() []string {
	names := r.cache.Keys()
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

// Login logs the named account in, creating it if needed. Concurrent logins
// for the same name share one handshake and its result.
func (r *Registry) Login(ctx context.Context, name, username, password string) (*Account, error) {
	v, err, shared := r.logins.Do(name, func() (any, error) {
		acct := r.GetOrCreate(name)
		return acct, acct.Login(ctx, username, password)
	})
	acct := v.(*Account)
	if shared {
		slog.Debug("login shared with concurrent caller", slog.String("account", name))
	}
	if err != nil {
		return acct, fmt.Errorf("account %q: %w", name, err)
	}
	return acct, nil
}

// LogoutAll logs out every logged-in account concurrently. Accounts do not
// share cookies, so one failed logout does not cancel the others. The first
// error is returned after all logouts finish.
func (r *Registry) LogoutAll(ctx context.Context, reset bool) error {
	var g errgroup.Group
	for _, acct := range r.cache.Values() {
		if !acct.IsLoggedIn() {
			continue
		}
		g.Go(func() error {
			if err := acct.Logout(ctx, reset); err != nil {
				slog.Warn("logout failed",
					slog.String("account", acct.Name()),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("account %q: %w", acct.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
