// Package alog provides the structured logging used by relationship, build on log/slog.
//
// The Synchronizer logs all its decisions on the custom levels LevelInfo and LevelDebug,
// which are below slog.LevelDebug. Applications see them only if they opt in,
// e.g. by setting the level of their handler to LevelDebug.
package alog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Logger interface is a subset of slog.Logger, with the aim to
// encourage the use of the methods offering context.Context, so that
// attributes added to the context by AddAttr are part of every line.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WithGroup(name string) *slog.Logger
}

var _ Logger = (*slog.Logger)(nil)

const (
	// LevelInfo is used to see which relationships are linked and unlinked.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used to see every call dispatched and how it is resolved.
	LevelDebug = slog.Level(-12)
)

// New returns a logger writing to the given handler,
// that adds the attributes stored in the context to each record.
// If ctx carries a span, its ids are added to the record
// and the record is added to the span as an event.
func New(h slog.Handler) *slog.Logger {
	return slog.New(&contextHandler{Handler: h})
}

// NewNoop returns a logger that performs no operations.
// Ideal as dependency in tests and the default of the Synchronizer.
func NewNoop() *slog.Logger {
	return slog.New(noopHandler{})
}

// NameLogLevels replaces the default name of a custom log level with a speaking name.
// Use it as slog.HandlerOptions.ReplaceAttr.
func NameLogLevels(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		level, _ := attr.Value.Any().(slog.Level)

		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}

		attr.Value = slog.StringValue(levelLabel)
	}

	return attr
}

var levelNames = map[slog.Level]string{
	LevelInfo:  "RELATIONSHIP:INFO",
	LevelDebug: "RELATIONSHIP:DEBUG",
}

type ctxKey struct{}

// AddAttr adds an attribute to the context, so every line logged with ctx contains it.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds attributes to the context, so every line logged with ctx contains them.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs := FromContext(ctx)

	all := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	all = append(all, attrs...)
	all = append(all, newAttrs...)

	return context.WithValue(ctx, ctxKey{}, all)
}

// FromContext returns the attributes added to ctx.
func FromContext(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	attrs, _ := ctx.Value(ctxKey{}).([]slog.Attr)

	return attrs
}

type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(FromContext(ctx)...)

	span := trace.SpanFromContext(ctx)

	if sCtx := span.SpanContext(); sCtx.IsValid() {
		record.AddAttrs(
			slog.String("traceID", sCtx.TraceID().String()),
			slog.String("spanID", sCtx.SpanID().String()),
		)
	}

	if span.IsRecording() {
		span.AddEvent("log", trace.WithAttributes(spanAttrs(record)...))
	}

	return h.Handler.Handle(ctx, record) //nolint:wrapcheck // decorate but not change anything
}

func spanAttrs(record slog.Record) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, record.NumAttrs()+2) //nolint:mnd // severity and message

	attrs = append(attrs,
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	)

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))

		return true
	})

	return attrs
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}

type noopHandler struct{}

var _ slog.Handler = (*noopHandler)(nil)

func (n noopHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (n noopHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler { return n }

func (n noopHandler) WithGroup(_ string) slog.Handler { return n }
