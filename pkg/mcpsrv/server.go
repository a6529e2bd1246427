package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/gvoice-mcp/internal/accounts"
	"github.com/usestring/gvoice-mcp/internal/config"
	"github.com/usestring/gvoice-mcp/internal/logging"
	"github.com/usestring/gvoice-mcp/internal/mcp"
	"github.com/usestring/gvoice-mcp/internal/mcp/tools"
	"github.com/usestring/gvoice-mcp/internal/query"
	"github.com/usestring/gvoice-mcp/pkg/voice"
)

// Server is the Google Voice MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal     *mcp.Server
	deps         *Deps
	startupLogin bool
	logCleanup   func() error
}

// NewServer creates a new MCP server with builtin Google Voice tools.
//
// Configuration is loaded from the environment unless WithConfig is given.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Load()
	}

	// Setup logging
	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	registry, err := accounts.NewRegistry(cfg.config.AccountCacheMaxItems, clientFactory(cfg.config, cfg.httpClient))
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create account registry: %w", err)
	}
	queryEngine := query.NewEngine(cfg.config.QueryMaxResults)

	toolDeps := &tools.Deps{
		Accounts: registry,
		Config:   cfg.config,
		Query:    queryEngine,
	}

	// Public deps share the same registry
	deps := &Deps{
		Accounts: registry,
		Config:   cfg.config,
		Query:    queryEngine,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	// Add custom extension registration callbacks
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:     internal,
		deps:         deps,
		startupLogin: !cfg.disableStartupLogin,
		logCleanup:   logCleanup,
	}, nil
}

// clientFactory builds one voice client per account. Each client gets its own
// cookie jar even when a custom HTTP client is supplied.
func clientFactory(cfg *config.Config, base *http.Client) accounts.ClientFactory {
	return func() *voice.Client {
		var opts []voice.Option
		if base != nil {
			hc := *base
			hc.Jar = nil
			opts = append(opts, voice.WithHTTPClient(&hc))
		}
		opts = append(opts, cfg.ClientOptions()...)
		return voice.New(opts...)
	}
}

// Run starts the MCP server with stdio transport.
// When credentials are configured the default account is logged in first.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.startupLogin {
		s.loginDefault(ctx)
	}
	return s.internal.Run(ctx)
}

// loginDefault logs the default account in with the configured credentials.
// Failures are logged; tools report NOT_AUTHENTICATED until gvoice_login
// succeeds.
func (s *Server) loginDefault(ctx context.Context) {
	cfg := s.deps.Config
	if cfg.Username == "" || cfg.Password == "" {
		return
	}
	name := cfg.DefaultAccount
	if name == "" {
		name = config.DefaultAccountName
	}
	if _, err := s.deps.Accounts.Login(ctx, name, cfg.Username, cfg.Password); err != nil {
		slog.Warn("startup login failed",
			slog.String("account", name),
			slog.String("error", err.Error()),
		)
		return
	}
	slog.Info("startup login succeeded", slog.String("account", name))
}

// Close cleans up server resources. Sessions are dropped, not logged out.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
