package config

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays NOTESBRIDGE_* variables onto c. Lists are
// comma-separated.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok
	}

	if v, ok := get("SCRIPT_INTERPRETER"); ok {
		c.Script.Interpreter = v
	}
	if v, ok := get("SCRIPT_TIMEOUT"); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSCRIPT_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Script.Timeout = d
	}
	if v, ok := get("OPERATION_TIMEOUT"); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sOPERATION_TIMEOUT: %w", EnvPrefix, err)
		}
		c.OperationTimeout = d
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := get("LOG_FILE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sLOG_FILE: %w", EnvPrefix, err)
		}
		c.Log.File = b
	}
	if v, ok := get("TOOLS_ENABLED"); ok {
		c.Tools.Enabled = normalizePatterns(strings.Split(v, ","))
	}
	if v, ok := get("TOOLS_DISABLED"); ok {
		c.Tools.Disabled = normalizePatterns(strings.Split(v, ","))
	}
	if v, ok := get("RENDER_PLAIN_TEXT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sRENDER_PLAIN_TEXT: %w", EnvPrefix, err)
		}
		c.Render.PlainText = b
	}
	if v, ok := get("METRICS_ADDR"); ok {
		c.Metrics.Addr = v
	}
	return nil
}
