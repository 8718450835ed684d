package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestPrivacyHandler_RedactsContentKeys tests that lyric content keys are redacted.
func TestPrivacyHandler_RedactsContentKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		key        string
		value      string
		wantRedact bool
	}{
		{name: "lyrics key", key: "lyrics", value: "my heart on fire", wantRedact: true},
		{name: "text key", key: "text", value: "walking down the street", wantRedact: true},
		{name: "uppercase key", key: "Line", value: "under starlight", wantRedact: true},
		{name: "keyword inside key", key: "raw_lyrics", value: "la la la", wantRedact: true},
		{name: "chorus key", key: "chorus", value: "oh oh oh", wantRedact: true},
		{name: "song name passes", key: "song", value: "night-drive", wantRedact: false},
		{name: "path passes", key: "source", value: "songs/night-drive.txt", wantRedact: false},
		{name: "digest passes", key: "digest", value: "a1b2c3", wantRedact: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("test", tt.key, tt.value)

			out := buf.String()
			redacted := strings.Contains(out, "[redacted:")
			if redacted != tt.wantRedact {
				t.Errorf("redacted = %v, want %v; output: %s", redacted, tt.wantRedact, out)
			}
			if tt.wantRedact && strings.Contains(out, tt.value) {
				t.Errorf("value leaked into output: %s", out)
			}
		})
	}
}

// TestPrivacyHandler_RedactsMultilineValues tests that any multi-line string is redacted.
func TestPrivacyHandler_RedactsMultilineValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewJSONHandler(&buf, nil)))
	logger.Info("test", "note", "first line\nsecond line")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["note"] != Redacted(22) {
		t.Errorf("note = %v, want %q", entry["note"], Redacted(22))
	}
}

func TestRedactedCountsCharacters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))
	logger.Info("test", "lyrics", "café")

	if !strings.Contains(buf.String(), "[redacted: 4 chars]") {
		t.Errorf("expected rune count of 4, got: %s", buf.String())
	}
}

// TestPrivacyHandler_LogLevels tests the verbose switch of the constructors.
func TestPrivacyHandler_LogLevels(t *testing.T) {
	t.Parallel()

	t.Run("verbose logs debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(&buf, true).Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug message in verbose mode")
		}
	})

	t.Run("non-verbose drops info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info message")
		logger.Warn("warn message")
		if strings.Contains(buf.String(), "info message") {
			t.Error("expected info to be dropped")
		}
		if !strings.Contains(buf.String(), "warn message") {
			t.Error("expected warn to be logged")
		}
	})
}

func TestPrivacyHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil))).With("lyrics", "secret verse", "song", "demo")
	logger.Info("test")

	out := buf.String()
	if strings.Contains(out, "secret verse") {
		t.Errorf("WithAttrs value leaked: %s", out)
	}
	if !strings.Contains(out, "song=demo") {
		t.Errorf("expected song attribute: %s", out)
	}
}

func TestPrivacyHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewPrivacyHandler(slog.NewTextHandler(&buf, nil)))
	logger.WithGroup("doc").Info("test", slog.Group("input", "text", "hidden words", "size", 12))

	out := buf.String()
	if strings.Contains(out, "hidden words") {
		t.Errorf("grouped value leaked: %s", out)
	}
	if !strings.Contains(out, "doc.input.size=12") {
		t.Errorf("expected grouped size attribute: %s", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, false).Warn("test", "text", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["text"] != Redacted(3) {
		t.Errorf("text = %v, want %q", entry["text"], Redacted(3))
	}
}

func TestNewPrivacyHandler_NilHandler(t *testing.T) {
	t.Parallel()

	if h := NewPrivacyHandler(nil); h.handler == nil {
		t.Error("expected default handler")
	}
}
