package mcpsrv

import (
	"github.com/usestring/gvoice-mcp/internal/accounts"
	"github.com/usestring/gvoice-mcp/internal/config"
	"github.com/usestring/gvoice-mcp/internal/query"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same account sessions as builtin tools.
type Deps struct {
	Accounts *accounts.Registry
	Config   *config.Config
	Query    *query.Engine
}
