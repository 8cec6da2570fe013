package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserKey      contextKey = "user"
	ServiceKey   contextKey = "service"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	Output io.Writer
}

var (
	mu  sync.RWMutex
	log zerolog.Logger
)

func init() {
	Init(Config{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
}

// Init reconfigures the global logger. Safe to call more than once.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	mu.Lock()
	log = l
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Ctx returns the global logger enriched with the request-scoped fields found in ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := *Default()
	if ctx == nil {
		return &l
	}
	c := l.With()
	if v, ok := ctx.Value(RequestIDKey).(string); ok && v != "" {
		c = c.Str("request_id", v)
	}
	if v, ok := ctx.Value(UserKey).(string); ok && v != "" {
		c = c.Str("user", v)
	}
	if v, ok := ctx.Value(ServiceKey).(string); ok && v != "" {
		c = c.Str("service", v)
	}
	l = c.Logger()
	return &l
}

func Info() *zerolog.Event  { return Default().Info() }
func Warn() *zerolog.Event  { return Default().Warn() }
func Error() *zerolog.Event { return Default().Error() }
func Debug() *zerolog.Event { return Default().Debug() }

func InfoContext(ctx context.Context) *zerolog.Event  { return Ctx(ctx).Info() }
func WarnContext(ctx context.Context) *zerolog.Event  { return Ctx(ctx).Warn() }
func ErrorContext(ctx context.Context) *zerolog.Event { return Ctx(ctx).Error() }
func DebugContext(ctx context.Context) *zerolog.Event { return Ctx(ctx).Debug() }
