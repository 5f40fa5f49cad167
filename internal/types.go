// types.go
// Core HCL struct definitions for msgformat
package internal

import "github.com/YakDriver/msgformat/internal/format"

const (
	// ConfigFileName is the name of the configuration file
	// that contains the configuration for msgformat.
	ConfigFileName = "msgformat.hcl"

	SeverityError = "error"
	SeverityWarn  = "warn"

	TextSummary = "summary"
	TextDetail  = "detail"
)

// Config represents the top-level configuration for msgformat.
type Config struct {
	Settings *Settings `hcl:"settings,block"`
	Calls    []Call    `hcl:"call,block"`
	Messages []Message `hcl:"message,block"`
}

// Settings controls how findings are classified and reported.
type Settings struct {
	Debug              bool    `hcl:"debug,optional"`
	MismatchSeverity   *string `hcl:"mismatch_severity,optional"`   // "error" (default), "warn"
	StructuralSeverity *string `hcl:"structural_severity,optional"` // "error" (default), "warn"
	Text               *string `hcl:"text,optional"`                // "summary" (default), "detail"
	LogLevel           *string `hcl:"log_level,optional"`           // "silent", "error", "warn", "info", "debug"
}

// Call declares a function or method whose argument at FormatArg is a
// message-format template followed by its arguments.
type Call struct {
	Name      string  `hcl:"name,label"` // "Infof" or "log.Infof"
	FormatArg int     `hcl:"format_arg,optional"`
	Severity  *string `hcl:"severity,optional"`
}

// Message is a catalog entry: a template checked on its own, optionally
// against a declared argument count.
type Message struct {
	ID       string  `hcl:"id,label"`
	Format   string  `hcl:"format"`
	Args     *int    `hcl:"args,optional"`
	Severity *string `hcl:"severity,optional"`
}

// SeverityFor picks the severity for a failed result. An explicit override
// (from a call or message block) wins over the settings.
func (c *Config) SeverityFor(kind format.ErrorKind, override *string) string {
	if override != nil && *override != "" {
		return *override
	}
	var s *string
	if c.Settings != nil {
		if kind == format.KindStructural {
			s = c.Settings.StructuralSeverity
		} else {
			s = c.Settings.MismatchSeverity
		}
	}
	if s == nil || *s == "" {
		return SeverityError
	}
	return *s
}

// UseDetail reports whether findings should carry the detail text.
func (c *Config) UseDetail() bool {
	return c.Settings != nil && c.Settings.Text != nil && *c.Settings.Text == TextDetail
}

// LogLevel returns the configured log level, "error" when unset.
func (c *Config) LogLevel() string {
	if c.Settings == nil || c.Settings.LogLevel == nil {
		return "error"
	}
	return *c.Settings.LogLevel
}
