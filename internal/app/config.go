package app

import "fmt"

// Config holds everything an App needs to run, as assembled by the CLI
// layer. Log settings left empty fall back to the host configuration file
// and then to defaults.
type Config struct {
	// HostConfigPath is the HCL host configuration (optional).
	HostConfigPath string
	// ModuleListPath is the legacy line-oriented module list (optional).
	ModuleListPath string
	// ReportPath, when set, receives a module report before teardown.
	ReportPath string
	LogFormat  string
	LogLevel   string
}

// NewConfig validates a Config and returns it.
func NewConfig(c Config) (*Config, error) {
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	return &c, nil
}
