package internal

import (
	"fmt"

	"github.com/YakDriver/msgformat/internal/format"
)

// As a lint tool, msgformat must trust its own configuration before it
// reports on anyone else's templates. ValidateConfig catches mistakes in the
// merged config so they surface in CI rather than as confusing findings.

// ValidateConfig returns hard errors and softer warnings for cfg.
func ValidateConfig(cfg *Config) (errs []error, warnings []string) {
	if cfg == nil {
		return nil, nil
	}

	e, w := validateSettings(cfg.Settings)
	errs = append(errs, e...)
	warnings = append(warnings, w...)

	e, w = validateCalls(cfg.Calls)
	errs = append(errs, e...)
	warnings = append(warnings, w...)

	e, w = validateMessages(cfg.Messages)
	errs = append(errs, e...)
	warnings = append(warnings, w...)
	return errs, warnings
}

func validSeverity(s *string) bool {
	return s == nil || *s == SeverityError || *s == SeverityWarn
}

func validateSettings(s *Settings) (errs []error, warnings []string) {
	if s == nil {
		return
	}
	if !validSeverity(s.MismatchSeverity) {
		errs = append(errs, fmt.Errorf("settings.mismatch_severity must be 'error' or 'warn' (got %q)", *s.MismatchSeverity))
	}
	if !validSeverity(s.StructuralSeverity) {
		errs = append(errs, fmt.Errorf("settings.structural_severity must be 'error' or 'warn' (got %q)", *s.StructuralSeverity))
	}
	if s.Text != nil && *s.Text != TextSummary && *s.Text != TextDetail {
		errs = append(errs, fmt.Errorf("settings.text must be 'summary' or 'detail' (got %q)", *s.Text))
	}
	if s.LogLevel != nil {
		switch *s.LogLevel {
		case "silent", "error", "warn", "info", "debug":
		default:
			warnings = append(warnings, fmt.Sprintf("settings.log_level %q is not recognized, falling back to 'info'", *s.LogLevel))
		}
	}
	return
}

func validateCalls(calls []Call) (errs []error, warnings []string) {
	seen := make(map[string]struct{}, len(calls))
	for _, c := range calls {
		if _, dup := seen[c.Name]; dup {
			warnings = append(warnings, fmt.Sprintf("call %q is declared more than once; the last declaration wins", c.Name))
		}
		seen[c.Name] = struct{}{}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("call block has an empty name"))
		}
		if c.FormatArg < 0 {
			errs = append(errs, fmt.Errorf("call %q has negative format_arg %d", c.Name, c.FormatArg))
		}
		if !validSeverity(c.Severity) {
			errs = append(errs, fmt.Errorf("call %q severity must be 'error' or 'warn' (got %q)", c.Name, *c.Severity))
		}
	}
	return
}

func validateMessages(msgs []Message) (errs []error, warnings []string) {
	for _, m := range msgs {
		if m.Args != nil && *m.Args < 0 {
			errs = append(errs, fmt.Errorf("message %q has negative args %d", m.ID, *m.Args))
		}
		if !validSeverity(m.Severity) {
			errs = append(errs, fmt.Errorf("message %q severity must be 'error' or 'warn' (got %q)", m.ID, *m.Severity))
		}
		if m.Args == nil {
			warnings = append(warnings, fmt.Sprintf("message %q declares no args; only its structure is checked", m.ID))
		}
		if res := format.Validate(m.Format); !res.Valid {
			warnings = append(warnings, fmt.Sprintf("message %q: %s", m.ID, res.Summary))
		}
	}
	return
}
