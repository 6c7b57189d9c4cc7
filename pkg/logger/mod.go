package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

var defaultLogger *loggerImpl

type (
	LogLevel string

	// Logger defines the interface for structured logging used throughout
	// the module. Keyvals follow the charmlog convention: alternating
	// key, value pairs appended after the message.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	// loggerImpl implements Logger using a charmbracelet/log logger.
	loggerImpl struct {
		charmLogger *charmlog.Logger
	}
)

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
	NoLevel       LogLevel = ""
)

// disabledCharmlogLevel sits above charmlog's ErrorLevel (8) so that
// setting it as a logger's level filters out every message.
const disabledCharmlogLevel = charmlog.Level(1000)

func (c *LogLevel) String() string {
	return string(*c)
}

// ToCharmlogLevel converts a LogLevel to the equivalent charmlog.Level.
// Unrecognized levels (including NoLevel) default to InfoLevel.
func (c LogLevel) ToCharmlogLevel() charmlog.Level {
	switch c {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return disabledCharmlogLevel
	default:
		return charmlog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	l.charmLogger.Debug(msg, keyvals...)
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	l.charmLogger.Info(msg, keyvals...)
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	l.charmLogger.Warn(msg, keyvals...)
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	l.charmLogger.Error(msg, keyvals...)
}

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charmLogger: l.charmLogger.With(keyvals...)}
}

// Config controls logger construction.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

// DefaultConfig returns the logger configuration used outside of tests:
// info level, text formatted, writing to stdout.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// TestConfig returns a configuration suitable for unit tests: logging is
// disabled entirely and output is discarded, so tests that construct a
// default-config logger do not spam `go test -v` output.
func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

// IsTestEnvironment reports whether the current process is running under
// `go test` (via the presence of a -test.v/-test.run style argument or the
// test binary naming convention).
func IsTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return strings.HasSuffix(os.Args[0], ".test") || strings.Contains(os.Args[0], "/_test/")
}

// NewLogger builds a Logger from cfg. A nil cfg uses DefaultConfig, unless
// running under `go test`, in which case TestConfig is used so tests don't
// need to remember to silence logging themselves.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		if IsTestEnvironment() {
			cfg = TestConfig()
		} else {
			cfg = DefaultConfig()
		}
	}
	charmLogger := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	} else {
		charmLogger.SetFormatter(charmlog.TextFormatter)
		charmLogger.SetStyles(getDefaultStyles())
	}
	return &loggerImpl{charmLogger: charmLogger}
}

// Init installs logger built from cfg as the process-wide default logger
// returned by GetDefault and by FromContext when no logger is attached to
// the context.
func Init(cfg *Config) error {
	built := NewLogger(cfg)
	impl, ok := built.(*loggerImpl)
	if !ok {
		return fmt.Errorf("logger: unexpected implementation %T", built)
	}
	defaultLogger = impl
	return nil
}

// contextKey is an unexported type so LoggerCtxKey cannot collide with
// context keys defined by other packages.
type contextKey string

// LoggerCtxKey is the context.Context key under which ContextWithLogger
// stores a Logger.
const LoggerCtxKey contextKey = "logger"

// ContextWithLogger returns a copy of ctx carrying log as the logger that
// FromContext will retrieve.
func ContextWithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, log)
}

// FromContext returns the Logger attached to ctx via ContextWithLogger, or
// the process-wide default logger (initializing one on first use) if ctx
// carries none or carries a nil/invalid value.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if log, ok := ctx.Value(LoggerCtxKey).(Logger); ok && log != nil {
			return log
		}
	}
	return GetDefault()
}

// GetDefault returns the process-wide default logger, lazily initializing
// it with NewLogger(nil) if Init has not been called yet.
func GetDefault() Logger {
	if defaultLogger == nil {
		_ = Init(nil)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { GetDefault().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetDefault().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetDefault().Warn(msg, args...) }
func Error(msg string, args ...any) { GetDefault().Error(msg, args...) }

// With returns a Logger derived from the process-wide default logger with
// the given keyvals attached to every subsequent message.
func With(args ...any) Logger {
	return GetDefault().With(args...)
}
