package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides structured logging with domain helpers
type Logger struct {
	*slog.Logger
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})
}

// NewLogger creates a JSON logger on stdout
func NewLogger(level string) *Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a JSON logger on w
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	return &Logger{Logger: slog.New(newHandler(w, ParseLevel(level)))}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// SeedFingerprint shortens a seed for logs. Seeds can be user identifiers,
// so the raw value is never logged.
func SeedFingerprint(hash uint32) string {
	return fmt.Sprintf("%08x", hash)
}

// SampleLogger logs a completed sampling request
func (l *Logger) SampleLogger(mode int, seedHash uint32, source string, duration time.Duration) {
	l.Info("Sample Selected",
		"mode", mode,
		"seed_fp", SeedFingerprint(seedHash),
		"source", source,
		"duration_us", duration.Microseconds(),
	)
}

// RunLogger logs run lifecycle events
func (l *Logger) RunLogger(event, runID string, mode int, status string) {
	l.Info("Run Event",
		"event", event,
		"run_id", runID,
		"mode", mode,
		"status", status,
	)
}

// DerivationLogger logs the derived type codes of a completed run
func (l *Logger) DerivationLogger(runID, stack, axis, myers string) {
	l.Info("Types Derived",
		"run_id", runID,
		"stack_type", stack,
		"axis_type", axis,
		"myers_type", myers,
	)
}

// CollectorLogger logs one collector attempt
func (l *Logger) CollectorLogger(collector, runID string, attempt int, err error) {
	level := slog.LevelDebug
	attrs := []any{
		"collector", collector,
		"run_id", runID,
		"attempt", attempt,
	}
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, "error", err)
	}
	l.Log(context.Background(), level, "Collector Attempt", attrs...)
}

// CacheLogger logs cache operations
func (l *Logger) CacheLogger(operation, key string, hit bool, itemCount int) {
	if len(key) > 8 {
		key = key[:8] + "..."
	}
	l.Debug("Cache Operation",
		"operation", operation,
		"key_hash", key,
		"hit", hit,
		"cache_size", itemCount,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// SetLevel replaces the handler with one at level, keeping stdout
func (l *Logger) SetLevel(level slog.Level) {
	l.Logger = slog.New(newHandler(os.Stdout, level))
}

var startTime = time.Now()
