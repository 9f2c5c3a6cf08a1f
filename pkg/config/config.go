// Package config loads notesbridge settings from defaults, an optional YAML
// or TOML file, and NOTESBRIDGE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/entrhq/notesbridge/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NOTESBRIDGE_"

// Config is the complete runtime configuration.
type Config struct {
	Script           ScriptConfig
	OperationTimeout time.Duration
	Log              LogConfig
	Tools            ToolsConfig
	Render           RenderConfig
	Metrics          MetricsConfig
}

// ScriptConfig controls the AppleScript executor.
type ScriptConfig struct {
	Interpreter string
	Timeout     time.Duration
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string
	Format string
	File   bool
}

// ToolsConfig selects which tools are exposed, by glob pattern.
type ToolsConfig struct {
	Enabled  []string
	Disabled []string
}

// RenderConfig controls how note bodies are returned.
type RenderConfig struct {
	PlainText bool
}

// MetricsConfig controls the metrics and health HTTP server. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Script: ScriptConfig{
			Interpreter: "osascript",
			Timeout:     10 * time.Second,
		},
		OperationTimeout: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tools: ToolsConfig{
			Enabled:  []string{"*"},
			Disabled: []string{},
		},
	}
}

// DefaultPath returns ~/.notesbridge/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".notesbridge", "config.yaml"), nil
}

// Load builds a Config from defaults, the file at path and the process
// environment, then validates it. An empty path tries DefaultPath and
// silently skips it when absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Script.Interpreter) == "" {
		return errors.New("script.interpreter must not be empty")
	}
	if c.Script.Timeout <= 0 {
		return fmt.Errorf("script.timeout must be positive, got %s", c.Script.Timeout)
	}
	if c.OperationTimeout <= c.Script.Timeout {
		return fmt.Errorf("operation_timeout (%s) must exceed script.timeout (%s)",
			c.OperationTimeout, c.Script.Timeout)
	}
	if _, known := logging.ParseLevel(c.Log.Level); !known {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	for _, pattern := range c.Tools.Enabled {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid tools.enabled pattern '%s': %w", pattern, err)
		}
	}
	for _, pattern := range c.Tools.Disabled {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid tools.disabled pattern '%s': %w", pattern, err)
		}
	}
	return nil
}
