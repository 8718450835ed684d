package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// contentKeys contains attribute keys whose values are lyric content.
// Lyrics are unpublished creative work; logs get shared in bug reports.
var contentKeys = map[string]bool{
	"lyrics":  true,
	"lyric":   true,
	"text":    true,
	"line":    true,
	"lines":   true,
	"content": true,
	"verse":   true,
	"chorus":  true,
	"bridge":  true,
	"body":    true,
}

// contentKeywords mark a key as lyric content when they appear anywhere in it,
// e.g. "raw_lyrics" or "line_text".
var contentKeywords = []string{"lyric", "text", "verse", "chorus"}

// Redacted returns the marker that replaces a value of n characters.
func Redacted(n int) string {
	return fmt.Sprintf("[redacted: %d chars]", n)
}

// PrivacyHandler wraps an slog.Handler and keeps lyric content out of log output.
// Values under content keys, and any multi-line string value, are replaced by
// a marker carrying only their length.
//
// Design decision: a handler wrapper rather than a custom logger, so every
// component keeps using the plain slog API and any underlying handler works.
type PrivacyHandler struct {
	handler slog.Handler
}

// NewPrivacyHandler creates a PrivacyHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used.
func NewPrivacyHandler(handler slog.Handler) *PrivacyHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PrivacyHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *PrivacyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying handler.
func (h *PrivacyHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes redacted and added.
func (h *PrivacyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = redactAttr(a)
	}
	return &PrivacyHandler{handler: h.handler.WithAttrs(out)}
}

// WithGroup returns a new handler with the given group name.
func (h *PrivacyHandler) WithGroup(name string) slog.Handler {
	return &PrivacyHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr redacts a single attribute, recursing into groups.
func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if isContentKey(a.Key) {
		return slog.String(a.Key, Redacted(valueLength(a.Value)))
	}

	if a.Value.Kind() == slog.KindString && strings.ContainsRune(a.Value.String(), '\n') {
		return slog.String(a.Key, Redacted(utf8.RuneCountInString(a.Value.String())))
	}

	return a
}

func isContentKey(key string) bool {
	k := strings.ToLower(key)
	if contentKeys[k] {
		return true
	}
	for _, kw := range contentKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// valueLength is the character count of the value's text form.
func valueLength(v slog.Value) int {
	return utf8.RuneCountInString(v.String())
}

// NewLogger creates a text logger with lyric redaction.
// verbose selects slog.LevelDebug; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPrivacyHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON logger with lyric redaction, for machine consumption.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPrivacyHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
