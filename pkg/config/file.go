package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config as it appears on disk. Pointer fields tell an
// absent key from a zero value so a file only overrides what it sets.
type fileConfig struct {
	Script *struct {
		Interpreter *string   `yaml:"interpreter" toml:"interpreter"`
		Timeout     *Duration `yaml:"timeout" toml:"timeout"`
	} `yaml:"script" toml:"script"`

	OperationTimeout *Duration `yaml:"operation_timeout" toml:"operation_timeout"`

	Log *struct {
		Level  *string `yaml:"level" toml:"level"`
		Format *string `yaml:"format" toml:"format"`
		File   *bool   `yaml:"file" toml:"file"`
	} `yaml:"log" toml:"log"`

	Tools *struct {
		Enabled  []string `yaml:"enabled" toml:"enabled"`
		Disabled []string `yaml:"disabled" toml:"disabled"`
	} `yaml:"tools" toml:"tools"`

	Render *struct {
		PlainText *bool `yaml:"plain_text" toml:"plain_text"`
	} `yaml:"render" toml:"render"`

	Metrics *struct {
		Addr *string `yaml:"addr" toml:"addr"`
	} `yaml:"metrics" toml:"metrics"`
}

// Duration accepts Go duration strings ("10s", "1m30s") or a bare number
// of milliseconds.
type Duration time.Duration

// ParseDuration parses the forms Duration accepts.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Duration) UnmarshalTOML(v interface{}) error {
	var parsed time.Duration
	var err error
	switch val := v.(type) {
	case string:
		parsed, err = ParseDuration(val)
	case int64:
		parsed = time.Duration(val) * time.Millisecond
	default:
		err = fmt.Errorf("invalid duration %v", v)
	}
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// mergeFile overlays the settings in path onto c. The format is chosen by
// extension: .yaml, .yml or .toml.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", ext)
	}

	c.apply(raw)
	return nil
}

func (c *Config) apply(raw fileConfig) {
	if s := raw.Script; s != nil {
		if s.Interpreter != nil {
			c.Script.Interpreter = strings.TrimSpace(*s.Interpreter)
		}
		if s.Timeout != nil {
			c.Script.Timeout = time.Duration(*s.Timeout)
		}
	}
	if raw.OperationTimeout != nil {
		c.OperationTimeout = time.Duration(*raw.OperationTimeout)
	}
	if l := raw.Log; l != nil {
		if l.Level != nil {
			c.Log.Level = strings.TrimSpace(*l.Level)
		}
		if l.Format != nil {
			c.Log.Format = strings.TrimSpace(*l.Format)
		}
		if l.File != nil {
			c.Log.File = *l.File
		}
	}
	if t := raw.Tools; t != nil {
		if t.Enabled != nil {
			c.Tools.Enabled = normalizePatterns(t.Enabled)
		}
		if t.Disabled != nil {
			c.Tools.Disabled = normalizePatterns(t.Disabled)
		}
	}
	if r := raw.Render; r != nil && r.PlainText != nil {
		c.Render.PlainText = *r.PlainText
	}
	if m := raw.Metrics; m != nil && m.Addr != nil {
		c.Metrics.Addr = strings.TrimSpace(*m.Addr)
	}
}

func normalizePatterns(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
