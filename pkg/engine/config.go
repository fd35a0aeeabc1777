package engine

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the top-level toolhost configuration.
type Config struct {
	Name        string       `yaml:"name" toml:"name"`
	Version     string       `yaml:"version" toml:"version"`
	Environment string       `yaml:"environment" toml:"environment"`
	Server      ServerConfig `yaml:"server" toml:"server"`
	Log         LogConfig    `yaml:"log" toml:"log"`
	Tools       []string     `yaml:"tools" toml:"tools"` // Allowlist; empty serves every tool.
	MCPServers  []MCPConfig  `yaml:"mcp_servers" toml:"mcp_servers"`
}

// ServerConfig holds HTTP listener settings. Timeouts are duration strings
// (e.g. "15s", "500ms").
type ServerConfig struct {
	Addr         string `yaml:"addr" toml:"addr"`
	ReadTimeout  string `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout  string `yaml:"idle_timeout" toml:"idle_timeout"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn or error.
	Format string `yaml:"format" toml:"format"` // text or json.
}

// MCPConfig describes an MCP server whose tools are imported. Exactly one of
// Command (stdio subprocess) or URL (SSE endpoint) is set.
type MCPConfig struct {
	Name    string   `yaml:"name" toml:"name"`
	Command string   `yaml:"command" toml:"command"`
	Args    []string `yaml:"args" toml:"args"`
	URL     string   `yaml:"url" toml:"url"`
}

const (
	defaultName        = "toolhost"
	defaultVersion     = "1.0.0"
	defaultEnvironment = "development"
	defaultAddr        = ":8080"
)

// LoadConfig reads a YAML or TOML file and returns a Config. The format is
// chosen by extension: .toml is TOML, anything else is YAML.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return Config{}, fmt.Errorf("engine: parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("engine: parse config: %w", err)
		}
	}

	return cfg, nil
}

// WithEnv applies environment overrides: ENVIRONMENT replaces the
// deployment label and PORT replaces the port of the listen address.
func (c Config) WithEnv(getenv func(string) string) Config {
	if env := getenv("ENVIRONMENT"); env != "" {
		c.Environment = env
	}

	if port := getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(c.Server.Addr)
		if err != nil {
			host = ""
		}
		c.Server.Addr = net.JoinHostPort(host, port)
	}

	return c
}

// WithDefaults fills unset identity and listener fields.
func (c Config) WithDefaults() Config {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Version == "" {
		c.Version = defaultVersion
	}
	if c.Environment == "" {
		c.Environment = defaultEnvironment
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return c
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	timeouts := []struct{ field, value string }{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.idle_timeout", c.Server.IdleTimeout},
	}
	for _, d := range timeouts {
		if _, err := parseDuration(d.value); err != nil {
			return fmt.Errorf("engine: config: %s: %w", d.field, err)
		}
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("engine: config: server.max_body_bytes must not be negative")
	}

	if c.Log.Level != "" {
		if _, err := ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("engine: config: log.level: %w", err)
		}
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("engine: config: log.format: unknown format %q", c.Log.Format)
	}

	for _, name := range c.Tools {
		if name == "" {
			return fmt.Errorf("engine: config: tools: empty tool name")
		}
	}

	mcpNames := make(map[string]struct{}, len(c.MCPServers))
	for _, m := range c.MCPServers {
		if m.Name == "" {
			return fmt.Errorf("engine: config: mcp server name is required")
		}
		if m.Command == "" && m.URL == "" {
			return fmt.Errorf("engine: config: mcp server %q: command or url is required", m.Name)
		}
		if m.Command != "" && m.URL != "" {
			return fmt.Errorf("engine: config: mcp server %q: command and url are mutually exclusive", m.Name)
		}
		if _, dup := mcpNames[m.Name]; dup {
			return fmt.Errorf("engine: config: duplicate mcp server name %q", m.Name)
		}
		mcpNames[m.Name] = struct{}{}
	}

	return nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}

	return level, nil
}

// parseDuration parses a duration string; empty means zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	return time.ParseDuration(s)
}
