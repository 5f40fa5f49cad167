// logger.go
// User-facing logging for callers that append msgformat diagnostics.
// Progress logging of lint runs is separate and lives in internal/debug.go.

package msgformat

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Logger is the interface for user-facing logs emitted by msgformat.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals map[string]any)
	Info(ctx context.Context, msg string, keyvals map[string]any)
	Warn(ctx context.Context, msg string, keyvals map[string]any)
	Error(ctx context.Context, msg string, keyvals map[string]any)
}

var globalLogger Logger

// SetLogger sets the global user-facing logger. A nil logger disables logging.
func SetLogger(logger Logger) {
	globalLogger = logger
}

// StdLogger writes one line per message through a standard log.Logger.
// A nil Log uses the package-level logger of the log package.
type StdLogger struct {
	Log *log.Logger
}

func (l StdLogger) Debug(_ context.Context, msg string, keyvals map[string]any) {
	l.print("DEBUG", msg, keyvals)
}
func (l StdLogger) Info(_ context.Context, msg string, keyvals map[string]any) {
	l.print("INFO", msg, keyvals)
}
func (l StdLogger) Warn(_ context.Context, msg string, keyvals map[string]any) {
	l.print("WARN", msg, keyvals)
}
func (l StdLogger) Error(_ context.Context, msg string, keyvals map[string]any) {
	l.print("ERROR", msg, keyvals)
}

func (l StdLogger) print(level, msg string, keyvals map[string]any) {
	logger := l.Log
	if logger == nil {
		logger = log.Default()
	}
	logger.Println(formatLine(level, msg, keyvals))
}

// formatLine renders "LEVEL: msg | k=v ..." with keys sorted.
func formatLine(level, msg string, keyvals map[string]any) string {
	line := level + ": " + msg
	if len(keyvals) == 0 {
		return line
	}
	keys := make([]string, 0, len(keyvals))
	for k := range keyvals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + fmt.Sprint(keyvals[k])
	}
	return line + " | " + strings.Join(pairs, " ")
}

// TFLogLogger sends logs to the tflog logger carried by ctx, so they land
// in provider logs next to the diagnostics.
type TFLogLogger struct{}

func (l TFLogLogger) Debug(ctx context.Context, msg string, keyvals map[string]any) {
	tflog.Debug(ctx, msg, keyvals)
}
func (l TFLogLogger) Info(ctx context.Context, msg string, keyvals map[string]any) {
	tflog.Info(ctx, msg, keyvals)
}
func (l TFLogLogger) Warn(ctx context.Context, msg string, keyvals map[string]any) {
	tflog.Warn(ctx, msg, keyvals)
}
func (l TFLogLogger) Error(ctx context.Context, msg string, keyvals map[string]any) {
	tflog.Error(ctx, msg, keyvals)
}
