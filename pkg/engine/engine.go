package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/germanamz/toolhost/pkg/httpapi"
	"github.com/germanamz/toolhost/pkg/sampletools/defaults"
	"github.com/germanamz/toolhost/pkg/tools/mcpclient"
	"github.com/germanamz/toolhost/pkg/tools/toolbox"
	"golang.org/x/sync/errgroup"
)

// RemoteTools is a connected source of imported tools.
type RemoteTools interface {
	ListTools(ctx context.Context) ([]toolbox.Tool, error)
	Close() error
}

// Connector opens a connection to a configured MCP server.
type Connector func(ctx context.Context, mc MCPConfig) (RemoteTools, error)

// Option configures an Engine.
type Option func(*Engine)

// WithConnector replaces the MCP connector. The default spawns Command as a
// stdio subprocess or dials URL as an SSE endpoint.
func WithConnector(c Connector) Option {
	return func(e *Engine) { e.connect = c }
}

// WithBuiltin replaces the built-in toolbox that imported tools are merged
// into.
func WithBuiltin(tb *toolbox.ToolBox) Option {
	return func(e *Engine) { e.builtin = tb }
}

// Engine assembles the toolbox served by every front-end from configuration.
type Engine struct {
	cfg     Config
	logger  *slog.Logger
	connect Connector
	builtin *toolbox.ToolBox
	tools   *toolbox.ToolBox
	remotes []RemoteTools
}

// New creates an Engine from the given configuration. It validates the
// config, connects every MCP server concurrently, merges the imported tools
// into the built-in toolbox, applies the tools allowlist and wraps every
// handler with recovery and logging middleware. On error all opened
// connections are closed.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...Option) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		cfg:     cfg,
		logger:  logger.With("component", "engine"),
		connect: dial,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.builtin == nil {
		e.builtin = defaults.Builtin()
	}

	imported, err := e.importAll(ctx)
	if err != nil {
		_ = e.Close()
		return nil, err
	}

	tb, err := defaults.New(e.builtin)
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("engine: builtin tools: %w", err)
	}
	for i, box := range imported {
		if err := tb.Merge(box); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("engine: mcp %q: %w", cfg.MCPServers[i].Name, err)
		}
	}

	for _, name := range cfg.Tools {
		if _, ok := tb.Get(name); !ok {
			_ = e.Close()
			return nil, fmt.Errorf("engine: tools: unknown tool %q", name)
		}
	}

	e.tools = tb.Filter(cfg.Tools).Wrap(
		toolbox.Logger(logger.With("component", "toolbox")),
		toolbox.Recovery(),
	)

	e.logger.Info("toolbox ready", "tools", e.tools.Len(), "mcp_servers", len(cfg.MCPServers))

	return e, nil
}

// importAll connects every configured MCP server concurrently and returns
// one toolbox per server, in configuration order.
func (e *Engine) importAll(ctx context.Context) ([]*toolbox.ToolBox, error) {
	n := len(e.cfg.MCPServers)
	remotes := make([]RemoteTools, n)
	boxes := make([]*toolbox.ToolBox, n)

	// Connections outlive New (SSE streams are bound to the dial context),
	// so the group does not derive a context that is cancelled on Wait.
	var g errgroup.Group
	for i, mc := range e.cfg.MCPServers {
		g.Go(func() error {
			remote, err := e.connect(ctx, mc)
			if err != nil {
				return fmt.Errorf("engine: mcp %q: %w", mc.Name, err)
			}
			remotes[i] = remote

			tools, err := remote.ListTools(ctx)
			if err != nil {
				return fmt.Errorf("engine: mcp %q: list tools: %w", mc.Name, err)
			}

			tb := toolbox.New()
			if err := tb.Register(tools...); err != nil {
				return fmt.Errorf("engine: mcp %q: %w", mc.Name, err)
			}
			boxes[i] = tb

			e.logger.Info("mcp server connected", "name", mc.Name, "tools", tb.Len())

			return nil
		})
	}

	err := g.Wait()
	for _, r := range remotes {
		if r != nil {
			e.remotes = append(e.remotes, r)
		}
	}
	if err != nil {
		return nil, err
	}

	return boxes, nil
}

// Toolbox returns the assembled toolbox.
func (e *Engine) Toolbox() *toolbox.ToolBox { return e.tools }

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// HTTPOptions returns the HTTP front-end options derived from the
// configuration.
func (e *Engine) HTTPOptions() httpapi.Options {
	s := e.cfg.Server

	// Durations were checked by Validate.
	read, _ := parseDuration(s.ReadTimeout)
	write, _ := parseDuration(s.WriteTimeout)
	idle, _ := parseDuration(s.IdleTimeout)

	return httpapi.Options{
		Addr:         s.Addr,
		Name:         e.cfg.Name,
		Version:      e.cfg.Version,
		Environment:  e.cfg.Environment,
		MaxBodyBytes: s.MaxBodyBytes,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}
}

// Close shuts down MCP connections.
func (e *Engine) Close() error {
	var firstErr error
	for _, r := range e.remotes {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.remotes = nil

	return firstErr
}

func dial(ctx context.Context, mc MCPConfig) (RemoteTools, error) {
	var (
		client *mcpclient.MCPClient
		err    error
	)
	if mc.URL != "" {
		client, err = mcpclient.NewSSE(ctx, mc.URL)
	} else {
		client, err = mcpclient.New(ctx, mc.Command, mc.Args...)
	}
	if err != nil {
		return nil, err
	}

	return client, nil
}
