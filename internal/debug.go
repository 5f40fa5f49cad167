package internal

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

var (
	globalLogger Logger
	loggerMutex  sync.Mutex

	globalDebugOutput  io.Writer = os.Stderr
	globalDebugEnabled bool
)

// EnableDebug turns on internal debug output when the config asks for it.
func EnableDebug(cfg *Config) {
	if cfg != nil && cfg.Settings != nil && cfg.Settings.Debug {
		EnableDebugForce()
	}
}

// EnableDebugForce turns on internal debug output regardless of config.
func EnableDebugForce() {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalDebugEnabled = true
}

// Debugf writes an internal debug line when debugging is enabled.
func Debugf(format string, args ...any) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if !globalDebugEnabled || globalDebugOutput == nil {
		return
	}
	fmt.Fprintf(globalDebugOutput, "[msgformat debug] "+format+"\n", args...)
}

// SetGlobalLogger installs the logger used by runs that are not given one.
func SetGlobalLogger(logger Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the installed logger, or an error-level
// StreamLogger on stderr when none is installed.
func GetGlobalLogger() Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if globalLogger == nil {
		globalLogger = &StreamLogger{out: os.Stderr, level: levelError}
	}
	return globalLogger
}

// LoggingConfig selects the level and sink of a Logger.
type LoggingConfig struct {
	LogLevel string    // "silent", "error", "warn", "info", "debug"
	Output   io.Writer // defaults to os.Stderr
	UseGoLog bool      // timestamped lines through a log.Logger
}

// Logger is the progress logger of a lint run.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type level int

const (
	levelSilent level = iota
	levelError
	levelWarn
	levelInfo
	levelDebug
)

var levelNames = map[string]level{
	"silent": levelSilent,
	"error":  levelError,
	"warn":   levelWarn,
	"info":   levelInfo,
	"debug":  levelDebug,
}

func (l level) tag() string {
	switch l {
	case levelError:
		return "[ERROR] "
	case levelWarn:
		return "[WARN] "
	case levelInfo:
		return "[INFO] "
	case levelDebug:
		return "[DEBUG] "
	}
	return ""
}

// NoopLogger drops everything. It backs the "silent" level.
type NoopLogger struct{}

func (*NoopLogger) Debug(string, ...any) {}
func (*NoopLogger) Info(string, ...any)  {}
func (*NoopLogger) Warn(string, ...any)  {}
func (*NoopLogger) Error(string, ...any) {}

// GoLogger writes through a standard log.Logger, so lines carry its prefix
// and timestamp.
type GoLogger struct {
	log   *log.Logger
	level level
}

func (g *GoLogger) Debug(format string, args ...any) { g.write(levelDebug, format, args) }
func (g *GoLogger) Info(format string, args ...any)  { g.write(levelInfo, format, args) }
func (g *GoLogger) Warn(format string, args ...any)  { g.write(levelWarn, format, args) }
func (g *GoLogger) Error(format string, args ...any) { g.write(levelError, format, args) }

func (g *GoLogger) write(l level, format string, args []any) {
	if l <= g.level {
		g.log.Printf(l.tag()+format, args...)
	}
}

// StreamLogger writes bare lines to an io.Writer.
type StreamLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level level
}

func (s *StreamLogger) Debug(format string, args ...any) { s.write(levelDebug, format, args) }
func (s *StreamLogger) Info(format string, args ...any)  { s.write(levelInfo, format, args) }
func (s *StreamLogger) Warn(format string, args ...any)  { s.write(levelWarn, format, args) }
func (s *StreamLogger) Error(format string, args ...any) { s.write(levelError, format, args) }

func (s *StreamLogger) write(l level, format string, args []any) {
	if l > s.level {
		return
	}
	line := l.tag() + fmt.Sprintf(format, args...)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, line)
}

// SetupLogger builds a Logger from cfg. An unknown level falls back to
// "info"; a nil cfg or the "silent" level gives a NoopLogger.
func SetupLogger(cfg *LoggingConfig) Logger {
	if cfg == nil {
		return &NoopLogger{}
	}
	lvl, ok := levelNames[cfg.LogLevel]
	if !ok {
		lvl = levelInfo
	}
	if lvl == levelSilent {
		return &NoopLogger{}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.UseGoLog {
		return &GoLogger{log: log.New(out, "[msgformat] ", log.LstdFlags), level: lvl}
	}
	return &StreamLogger{out: out, level: lvl}
}
