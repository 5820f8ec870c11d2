package loader

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.l)
	})

	t.Run("writes every level with attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler)).With("component", "loader")

		adapter.Debug("debug msg", "n", 1)
		adapter.Info("info msg")
		adapter.Warn("warn msg")
		adapter.Error("error msg")

		out := buf.String()
		for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", "component=loader", "n=1"} {
			assert.True(t, strings.Contains(out, want), "missing %q in %s", want, out)
		}
	})
}

func TestCache_LogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	c := New(WithLogger(NewSlogAdapter(slog.New(handler))))

	_, _ = c.Load("a: 1")
	_, _ = c.Load("a: 1")

	assert.Contains(t, buf.String(), "parsed document")
	assert.Contains(t, buf.String(), "loader cache hit")
}
