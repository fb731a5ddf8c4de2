package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fhuszti/event-medias-go/internal/api_context"
)

const serviceName = "event-medias"

var std *slog.Logger

// --- handler that appends the caller's subject, and the asset id when routed ---

type subjectAttrHandler struct{ h slog.Handler }

func (s subjectAttrHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return s.h.Enabled(ctx, lvl)
}

func (s subjectAttrHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if sub, ok := api_context.AuthSubjectFromContext(ctx); ok {
		r.AddAttrs(slog.String("sub", sub))
	} else {
		r.AddAttrs(slog.String("sub", "system"))
	}
	if id, ok := api_context.IDFromContext(ctx); ok {
		r.AddAttrs(slog.String("asset_id", id.String()))
	}
	return s.h.Handle(ctx, r)
}

func (s subjectAttrHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return subjectAttrHandler{h: s.h.WithAttrs(a)}
}
func (s subjectAttrHandler) WithGroup(n string) slog.Handler {
	return subjectAttrHandler{h: s.h.WithGroup(n)}
}

// --- public API ---

// Init
// ENV:
//
//	LOG_FORMAT    json|text (default: json)
//	LOG_LEVEL     debug|info|warn|error (default: info)
//	LOG_SOURCE    true|false (default: false)
func Init() {
	level := parseLevel(getEnv("LOG_LEVEL", "info"))
	addSource := parseBool(getEnv("LOG_SOURCE", "false"))
	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))

	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}

	base := newBaseHandler(os.Stdout, format, opts)

	// svc is added first so it prints before sub in TextHandler.
	std = slog.New(subjectAttrHandler{h: base}).With("svc", serviceName)
	slog.SetDefault(std)

	// Keep legacy log.Printf visible (no ctx, no sub).
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

// --- small helpers ---

func newBaseHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
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

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func activeLogger() *slog.Logger {
	if std != nil {
		return std
	}
	return slog.Default()
}

// --- convenience wrappers ---

func Info(ctx context.Context, msg string, attrs ...any) {
	activeLogger().InfoContext(ctx, msg, attrs...)
}
func Warn(ctx context.Context, msg string, attrs ...any) {
	activeLogger().WarnContext(ctx, msg, attrs...)
}
func Error(ctx context.Context, msg string, attrs ...any) {
	activeLogger().ErrorContext(ctx, msg, attrs...)
}
func Debug(ctx context.Context, msg string, attrs ...any) {
	activeLogger().DebugContext(ctx, msg, attrs...)
}

func Infof(ctx context.Context, format string, a ...any) {
	activeLogger().InfoContext(ctx, fmt.Sprintf(format, a...))
}
func Errorf(ctx context.Context, format string, a ...any) {
	activeLogger().ErrorContext(ctx, fmt.Sprintf(format, a...))
}
func Warnf(ctx context.Context, format string, a ...any) {
	activeLogger().WarnContext(ctx, fmt.Sprintf(format, a...))
}
func Debugf(ctx context.Context, format string, a ...any) {
	activeLogger().DebugContext(ctx, fmt.Sprintf(format, a...))
}
