// Package httpapi serves a toolbox over HTTP: a discovery endpoint listing
// tool schemas, a dispatch endpoint invoking tools by name, and health and
// index endpoints. Every response is JSON and carries permissive CORS headers.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/germanamz/toolhost/pkg/tools/toolbox"
)

// Options configures the HTTP front-end. All values are passed in
// explicitly; the package reads no environment.
type Options struct {
	Addr         string
	Name         string
	Version      string
	Environment  string
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

const (
	defaultAddr         = ":8080"
	defaultName         = "toolhost"
	defaultVersion      = "1.0.0"
	defaultEnvironment  = "development"
	defaultMaxBodyBytes = 1 << 20
)

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = defaultAddr
	}
	if o.Name == "" {
		o.Name = defaultName
	}
	if o.Version == "" {
		o.Version = defaultVersion
	}
	if o.Environment == "" {
		o.Environment = defaultEnvironment
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 15 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 15 * time.Second
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = 60 * time.Second
	}

	return o
}

// Server is the HTTP front-end for a toolbox.
type Server struct {
	opts    Options
	tools   *toolbox.ToolBox
	logger  *slog.Logger
	now     func() time.Time
	handler http.Handler
}

// New creates a Server for tb. The toolbox must be fully populated; it is
// only read afterwards.
func New(tb *toolbox.ToolBox, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		opts:   opts.withDefaults(),
		tools:  tb,
		logger: logger.With("component", "httpapi"),
		now:    time.Now,
	}
	s.handler = s.routes()

	return s
}

// Handler returns the server's http.Handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	s.logger.Info("HTTP server starting",
		"addr", s.opts.Addr,
		"environment", s.opts.Environment,
		"tools", s.tools.Len(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return err
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /discovery", s.handleDiscovery)
	mux.HandleFunc("POST /tools", s.handleTools)
	mux.HandleFunc("/", s.handleNotFound)

	return s.requestIDMiddleware(s.corsMiddleware(s.loggingMiddleware(s.recoverMiddleware(mux))))
}
