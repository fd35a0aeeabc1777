package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/germanamz/toolhost/pkg/engine"
	"github.com/joho/godotenv"
)

// defaultConfigFiles are tried in order when no -config flag is given.
var defaultConfigFiles = []string{"toolhost.yaml", "toolhost.yml", "toolhost.toml"}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveConfigPath returns the config file to use. Priority:
// 1. Explicit -config flag (non-empty)
// 2. The first of defaultConfigFiles that exists
// 3. "" (no file; built-in defaults only)
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// loadConfig resolves and loads the configuration, then applies environment
// and command line overrides and defaults.
func loadConfig(opts globalOptions) (engine.Config, error) {
	var cfg engine.Config

	if path := resolveConfigPath(opts.configPath); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			return engine.Config{}, err
		}
		cfg = loaded
	}

	cfg = cfg.WithEnv(os.Getenv)
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}

	return cfg, nil
}

// newLogger builds the process logger. Logs always go to w (stderr), which
// keeps stdout free for the MCP protocol and command output.
func newLogger(w io.Writer, lc engine.LogConfig) (*slog.Logger, error) {
	level := slog.LevelInfo
	if lc.Level != "" {
		parsed, err := engine.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}

	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

// startEngine loads configuration, builds the logger and assembles the
// toolbox. mutate, when non-nil, adjusts the configuration first.
func startEngine(ctx context.Context, opts globalOptions, stderr io.Writer, mutate func(*engine.Config)) (*engine.Engine, *slog.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}

	logger, err := newLogger(stderr, cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return eng, logger, nil
}
