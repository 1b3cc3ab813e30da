package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncatingHandler tests attribute truncation behavior.
func TestTruncatingHandler(t *testing.T) {
	t.Parallel()

	t.Run("long string values are truncated", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil)))

		long := strings.Repeat("x", MaxValueLength*4)
		logger.Info("fetched page", "body", long)

		out := buf.String()
		if strings.Contains(out, long) {
			t.Error("full value leaked into log output")
		}
		if !strings.Contains(out, ellipsis) {
			t.Errorf("expected ellipsis marker in output: %q", out)
		}
	})

	t.Run("short values pass through unchanged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil)))

		logger.Info("fetched page", "url", "https://example.org/kampf.html")

		if !strings.Contains(buf.String(), "https://example.org/kampf.html") {
			t.Errorf("short value mangled: %q", buf.String())
		}
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil)))

		// Fill past the limit with two-byte runes so the cut point lands
		// mid-rune unless the handler backs up.
		logger.Info("title", "value", strings.Repeat("ü", MaxValueLength))

		out := buf.String()
		if strings.Contains(out, "�") {
			t.Errorf("output contains replacement character: %q", out)
		}
	})

	t.Run("group attributes are truncated recursively", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil)))

		long := strings.Repeat("y", MaxValueLength*2)
		logger.Info("page", slog.Group("doc", slog.String("body", long)))

		if strings.Contains(buf.String(), long) {
			t.Error("grouped value escaped truncation")
		}
	})
}

// TestNewLogger tests the verbose level switch.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("debug line")
		if !strings.Contains(buf.String(), "debug line") {
			t.Error("debug output suppressed in verbose mode")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info line")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}
