package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

// isolateEnv clears every override and points HOME at an empty directory
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"SCRIPT_INTERPRETER", "SCRIPT_TIMEOUT", "OPERATION_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"TOOLS_ENABLED", "TOOLS_DISABLED", "RENDER_PLAIN_TEXT", "METRICS_ADDR",
	} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "osascript", cfg.Script.Interpreter)
	assert.Equal(t, 10*time.Second, cfg.Script.Timeout)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Log.File)
	assert.Equal(t, []string{"*"}, cfg.Tools.Enabled)
	assert.Empty(t, cfg.Tools.Disabled)
	assert.False(t, cfg.Render.PlainText)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultPath(t *testing.T) {
	isolateEnv(t)
	path, err := DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "notesbridge.yaml", `
script:
  interpreter: /usr/bin/osascript
  timeout: 5s
operation_timeout: 20000
log:
  level: warn
  format: console
  file: true
tools:
  enabled: ["*-notes", "get-*"]
  disabled: [" create-note "]
render:
  plain_text: true
metrics:
  addr: 127.0.0.1:9464
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/osascript", cfg.Script.Interpreter)
	assert.Equal(t, 5*time.Second, cfg.Script.Timeout)
	assert.Equal(t, 20*time.Second, cfg.OperationTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Log.File)
	assert.Equal(t, []string{"*-notes", "get-*"}, cfg.Tools.Enabled)
	assert.Equal(t, []string{"create-note"}, cfg.Tools.Disabled)
	assert.True(t, cfg.Render.PlainText)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestLoad_TOML(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "notesbridge.toml", `
operation_timeout = "45s"

[script]
timeout = 15000

[log]
level = "debug"

[tools]
disabled = ["create-*"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "osascript", cfg.Script.Interpreter)
	assert.Equal(t, 15*time.Second, cfg.Script.Timeout)
	assert.Equal(t, 45*time.Second, cfg.OperationTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.Tools.Enabled)
	assert.Equal(t, []string{"create-*"}, cfg.Tools.Disabled)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "partial.yml", "render:\n  plain_text: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	expected := Default()
	expected.Render.PlainText = true
	assert.Equal(t, expected, cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unsupported extension", "config.json", `{}`},
		{"bad yaml", "config.yaml", "script: [unclosed"},
		{"bad toml", "config.toml", "script = ["},
		{"bad duration", "config.yaml", "script:\n  timeout: soon\n"},
		{"inner exceeds outer", "config.yaml", "script:\n  timeout: 40s\n"},
		{"unknown level", "config.yaml", "log:\n  level: loud\n"},
		{"bad pattern", "config.toml", "[tools]\nenabled = [\"[oops\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			_, err := Load(writeConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "config.yaml", "log:\n  level: warn\n")
	t.Setenv("NOTESBRIDGE_LOG_LEVEL", "error")
	t.Setenv("NOTESBRIDGE_TOOLS_ENABLED", "search-notes, get-note-content,")
	t.Setenv("NOTESBRIDGE_OPERATION_TIMEOUT", "1m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, []string{"search-notes", "get-note-content"}, cfg.Tools.Enabled)
	assert.Equal(t, time.Minute, cfg.OperationTimeout)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NOTESBRIDGE_SCRIPT_INTERPRETER": "/opt/osascript",
		"NOTESBRIDGE_SCRIPT_TIMEOUT":     "2000",
		"NOTESBRIDGE_LOG_FORMAT":         "console",
		"NOTESBRIDGE_LOG_FILE":           "true",
		"NOTESBRIDGE_TOOLS_DISABLED":     "create-note",
		"NOTESBRIDGE_RENDER_PLAIN_TEXT":  "1",
		"NOTESBRIDGE_METRICS_ADDR":       ":9090",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "/opt/osascript", cfg.Script.Interpreter)
	assert.Equal(t, 2*time.Second, cfg.Script.Timeout)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Log.File)
	assert.Equal(t, []string{"create-note"}, cfg.Tools.Disabled)
	assert.True(t, cfg.Render.PlainText)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestApplyEnv_Invalid(t *testing.T) {
	for _, key := range []string{"NOTESBRIDGE_SCRIPT_TIMEOUT", "NOTESBRIDGE_OPERATION_TIMEOUT", "NOTESBRIDGE_LOG_FILE", "NOTESBRIDGE_RENDER_PLAIN_TEXT"} {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return "not-valid", true
				}
				return "", false
			}
			cfg := Default()
			assert.Error(t, cfg.ApplyEnv(lookup))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty interpreter", func(c *Config) { c.Script.Interpreter = " " }, "script.interpreter must not be empty"},
		{"zero script timeout", func(c *Config) { c.Script.Timeout = 0 }, "script.timeout must be positive, got 0s"},
		{"outer equals inner", func(c *Config) { c.OperationTimeout = c.Script.Timeout }, "operation_timeout (10s) must exceed script.timeout (10s)"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, `log.format must be json or console, got "xml"`},
		{"bad disabled pattern", func(c *Config) { c.Tools.Disabled = []string{"a["} }, "invalid tools.disabled pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"10000", 10 * time.Second, false},
		{" 250ms ", 250 * time.Millisecond, false},
		{"1m30s", 90 * time.Second, false},
		{"", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDuration(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ShippedExamples(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(filepath.Join("..", "..", "examples", "config", "notesbridge.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join("..", "..", "examples", "config", "notesbridge.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"create-*"}, cfg.Tools.Disabled)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Render.PlainText)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}
