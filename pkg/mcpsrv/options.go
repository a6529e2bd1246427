package mcpsrv

import (
	"context"
	"net/http"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gvoice-mcp/internal/config"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client

	// Logging overrides
	logLevel string
	logFile  string

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool
	disableStartupLogin   bool

	// Registration callbacks; closures keep the handlers' generic types
	toolRegistrations     []func(*mcp.Server)
	promptRegistrations   []func(*mcp.Server)
	resourceRegistrations []func(*mcp.Server)

	// Deferred tool registrations that need access to Deps
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithHTTPClient sets the HTTP client each account session is built from.
// The client is copied per account and its Jar is ignored: every account
// gets a fresh cookie jar. HTTP_CLIENT_TIMEOUT_MS still applies.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithConfig replaces the environment configuration.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithoutStartupLogin skips logging the default account in when Run starts,
// even if credentials are configured.
func WithoutStartupLogin() Option {
	return func(cfg *serverConfig) {
		cfg.disableStartupLogin = true
	}
}

// WithoutBuiltinTools disables all builtin gvoice tools and resources.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin gvoice prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server. The output type's zero
// value is checked against its inferred schema at registration, as for the
// builtin tools.
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "gvoice_version", Description: "Protocol version"},
//	    func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, VersionOutput, error) {
//	        return nil, VersionOutput{Version: voice.APIVersion}, nil
//	    })
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool that has access to Deps.
// Use this when your tool needs the account sessions or the query engine.
//
// The builder receives Deps and returns a handler function.
//
// Example:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "list_accounts", Description: "List account names"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return nil, MyOutput{Count: d.Accounts.Len()}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt with the server.
//
//	mcpsrv.WithPrompt(&mcp.Prompt{Name: "weekend_mode", Description: "Only ring the mobile"},
//	    func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
//	        return &mcp.GetPromptResult{Messages: []*mcp.PromptMessage{
//	            {Role: "user", Content: &mcp.TextContent{Text: "Disable every phone except the mobile."}},
//	        }}, nil
//	    })
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template with the server.
// Handlers return sdk types directly; see internal/mcp for the builtin
// gvoice:// templates.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
