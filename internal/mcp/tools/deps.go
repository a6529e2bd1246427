package tools

import (
	"github.com/usestring/gvoice-mcp/internal/accounts"
	"github.com/usestring/gvoice-mcp/internal/config"
	"github.com/usestring/gvoice-mcp/internal/query"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Accounts *accounts.Registry
	Config   *config.Config
	Query    *query.Engine
}

// AccountName resolves an empty account argument to the configured default.
func (d *Deps) AccountName(name string) string {
	if name != "" {
		return name
	}
	if d.Config != nil && d.Config.DefaultAccount != "" {
		return d.Config.DefaultAccount
	}
	return config.DefaultAccountName
}

// Account returns an existing account or a NOT_FOUND error naming it.
func (d *Deps) Account(name string) (*accounts.Account, error) {
	acct, err := d.Accounts.Lookup(d.AccountName(name))
	if err != nil {
		return nil, WrapVoiceError(err)
	}
	return acct, nil
}
