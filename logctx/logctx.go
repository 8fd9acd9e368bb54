// Package logctx carries a *slog.Logger, and the trace id it logs with,
// through a context.Context.
package logctx

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/phsym/console-slog"
	"golang.org/x/crypto/ssh/terminal"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
)

type IdProviderT func() string

func DefaultIdProvider() string {
	return uuid.New().String()
}

var IdProvider IdProviderT = DefaultIdProvider

const LoggerKey = "logger"

type TraceIdKey string

// RequestTraceIdKey is the trace ID key for HTTP requests.
const RequestTraceIdKey TraceIdKey = "trace_id"

// CheckTraceIdKey is the trace ID key for a command-line check run.
const CheckTraceIdKey TraceIdKey = "check_trace_id"

// MissingTraceIdKey is the key that will be present to indicate tracing is misconfigured.
const MissingTraceIdKey TraceIdKey = "missing_trace_id"

func UnconfiguredLogger() *slog.Logger {
	return slog.Default().With("unconfigured_logger", "true")
}

// WithLogger returns a new context that adds a logger which
// can be retrieved with Logger(Context).
func WithLogger(c context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(c, LoggerKey, logger)
}

// WithTracingLogger replaces the context logger with one
// that logs the ActiveTraceId.
// In this way you can do WithTracingLogger(WithTraceId(WithLogger(ctx, logger), key))
// to get a logger in the context with a trace id.
func WithTracingLogger(c context.Context) context.Context {
	tkey, trace := ActiveTraceId(c)
	return WithLogger(c, Logger(c).With(string(tkey), trace))
}

func WithTraceId(c context.Context, key TraceIdKey) context.Context {
	return context.WithValue(c, key, IdProvider())
}

func LoggerOrNil(c context.Context) *slog.Logger {
	logger, _ := c.Value(LoggerKey).(*slog.Logger)
	return logger
}

func Logger(c context.Context) *slog.Logger {
	if logger, ok := c.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	logger := UnconfiguredLogger()
	logger.Warn(
		"Logger called with no logger in context. " +
			"It should always be there to ensure consistent logs from a single logger")
	return logger
}

// ActiveTraceId returns the first valid trace value and type from the given context,
// preferring a request trace over a check trace,
// or MissingTraceIdKey if there is none.
// The returned trace value will always be a string; if the value is not string-like,
// it will have '!BADVALUE-' prepended.
func ActiveTraceId(c context.Context) (TraceIdKey, string) {
	for _, key := range []TraceIdKey{RequestTraceIdKey, CheckTraceIdKey} {
		if tv := c.Value(key); tv != nil {
			return key, toTraceVal(tv)
		}
	}
	return MissingTraceIdKey, "no-trace-id-in-context"
}

func toTraceVal(v any) string {
	if s, ok := AsString(v); ok {
		return s
	}
	return fmt.Sprintf("!BADVALUE-%v", v)
}

// AsString returns o as a string and true if o is a string,
// a fmt.Stringer, or a reflect.String kind (subtype of string).
// Otherwise, return "" and false.
func AsString(o any) (string, bool) {
	if o == nil {
		return "", false
	} else if s, ok := o.(string); ok {
		return s, true
	} else if s, ok := o.(fmt.Stringer); ok {
		return s.String(), true
	}
	r := reflect.ValueOf(o)
	if r.Kind() == reflect.String {
		return r.String(), true
	}
	return "", false
}

func AddTo(c context.Context, args ...any) context.Context {
	ctx, _ := AddToR(c, args...)
	return ctx
}

// AddToR adds args to the context logger,
// returning the new context and the new logger.
func AddToR(c context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := Logger(c).With(args...)
	return WithLogger(c, logger), logger
}

type NewLoggerInput struct {
	// Level is the logging level name. Should match slog.Level strings
	// ('debug', 'info', 'warn', 'error').
	// Case independent. Empty is 'info'.
	Level string
	// Format should be empty, 'json', 'text', or 'console'.
	// If empty, use 'json' if File is set, console if IsTty,
	// or 'json' otherwise.
	Format string
	// File is the filename to log to.
	File string
	// Out specifies the stream to log to.
	// If not set and File is set, log to that file.
	// If IsTty, log to os.Stderr.
	// Otherwise, log to os.Stdout.
	Out io.Writer
	// Fields are additional fields to add to the logger.
	Fields []any
}

func NewLogger(cfg NewLoggerInput) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}

	out := cfg.Out
	if out == nil {
		if cfg.File != "" {
			file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				return nil, err
			}
			out = file
		} else if IsTty() {
			out = os.Stderr
		} else {
			out = os.Stdout
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		if cfg.File == "" && IsTty() {
			format = "console"
		} else {
			format = "json"
		}
	}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(out, hopts)
	case "text":
		handler = slog.NewTextHandler(out, hopts)
	case "console":
		handler = console.NewHandler(out, &console.HandlerOptions{Level: hopts.Level})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger := slog.New(handler)
	if len(cfg.Fields) > 0 {
		logger = logger.With(cfg.Fields...)
	}
	return logger, nil
}

func IsTty() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}

// ParseLevel parses a slog level name. An empty string is slog.LevelInfo.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return level, nil
	}
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// WithNullLogger adds a logger backed by a Hook into the given context
// (default c to context.Background). Use the hook to get the log records.
func WithNullLogger(c context.Context) (context.Context, *Hook) {
	if c == nil {
		c = context.Background()
	}
	logger, hook := NewNullLogger()
	return WithLogger(c, logger.With("testlogger", true)), hook
}

func NewNullLogger() (*slog.Logger, *Hook) {
	hook := NewHook()
	return slog.New(hook), hook
}
