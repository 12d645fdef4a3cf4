package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	buf.Reset()
	return entry
}

func TestBusinessAndInternalErrorLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelDebug, Format: FormatJSON, Service: "scorekeeper"})

	log.BusinessError("courses.create: course exists", errors.New("duplicate"), "course_id", 7)
	entry := decodeLine(t, &buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "duplicate", entry["err"])
	assert.Equal(t, float64(7), entry["course_id"])
	assert.Equal(t, "scorekeeper", entry["service"])

	log.InternalError("courses.list: failed", errors.New("db down"))
	assert.Equal(t, "ERROR", decodeLine(t, &buf)["level"])

	log.InternalError("ignored", nil)
	assert.Zero(t, buf.Len())

	log.Critical("app: init failed")
	assert.Equal(t, "CRITICAL", decodeLine(t, &buf)["level"])
}

func TestFromContext(t *testing.T) {
	fallback := NewNop()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	var buf bytes.Buffer
	scoped := New(&buf, Options{Level: slog.LevelInfo}).With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)

	FromContext(ctx, fallback).Info("http: request")
	assert.Equal(t, "abc", decodeLine(t, &buf)["request_id"])
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "TEXT")

	opts := OptionsFromEnv()
	assert.Equal(t, slog.LevelDebug, opts.Level)
	assert.Equal(t, FormatText, opts.Format)

	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_FORMAT", "yaml")

	opts = OptionsFromEnv()
	assert.Equal(t, slog.LevelWarn, opts.Level)
	assert.Equal(t, FormatJSON, opts.Format)
}
