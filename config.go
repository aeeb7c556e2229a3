package plusc

import "log/slog"

// Config holds configuration options for translation.
type Config struct {
	// Filename is used in error positions (optional).
	Filename string

	// Template is the output text. It must contain the statements
	// placeholder exactly once (default: DefaultTemplate).
	Template string

	// Logger receives parser debug records.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// withDefaults returns a copy of c with default values for unset fields.
// A nil receiver yields the default configuration.
func (c *Config) withDefaults() Config {
	var cfg Config
	if c != nil {
		cfg = *c
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
}
