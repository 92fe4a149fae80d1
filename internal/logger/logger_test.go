package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	logger := New("test")
	assert.NotNil(t, logger)
	logger.Info("component logger ready")
}

func TestNewWithWriterFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept", String("key", "value"))
	logger.Error("also kept")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "kept", entries[0]["message"])
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Info("test fields",
		String("string", "value"),
		Strings("strings", []string{"a", "b"}),
		Int("int", 42),
		Int64("int64", int64(999)),
		Float64("float", 3.14),
		Bool("bool", true),
		Duration("elapsed", 2*time.Second),
		Any("any", map[string]interface{}{"key": "value"}),
	)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "value", entry["string"])
	assert.Equal(t, []interface{}{"a", "b"}, entry["strings"])
	assert.Equal(t, float64(42), entry["int"])
	assert.Equal(t, float64(999), entry["int64"])
	assert.Equal(t, 3.14, entry["float"])
	assert.Equal(t, true, entry["bool"])
	assert.Contains(t, entry, "elapsed")
	assert.Equal(t, map[string]interface{}{"key": "value"}, entry["any"])
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, "info")
	child := base.WithFields(String("component", "cache"))

	child.Info("from child")
	base.Info("from base")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "cache", entries[0]["component"])
	assert.NotContains(t, entries[1], "component")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	assert.Same(t, logger, logger.WithError(nil))

	logger.WithError(errors.New("boom")).Error("failed")
	logger.Error("field form", Error(errors.New("bang")))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "boom", entries[0]["error"])
	assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
	assert.Contains(t, entries[0], "error_location")
	assert.Equal(t, "bang", entries[1]["error"])
}

func TestLoggerWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.WithContext(context.Background()).Info("no span")

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.WithContext(ctx).Info("with span")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0], "trace_id")
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entries[1]["trace_id"])
}

func TestNopLogger(t *testing.T) {
	logger := Nop()
	logger.Error("nothing", String("key", "value"))
	assert.NotNil(t, logger.WithFields(String("a", "b")))
}

func TestLoggerConcurrency(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	logger := NewWithWriter(&lockedWriter{mu: &mu, buf: &buf}, "info")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.WithFields(Int("goroutine", id)).Info("concurrent log")
		}(i)
	}
	wg.Wait()

	assert.Len(t, decodeLines(t, &buf), 10)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}

type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}
