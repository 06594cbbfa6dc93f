package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelOff,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLogger_WritesJSONLineWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelDebug}).With(Component("roster"))

	l.Info("student added", StudentName("Alice"), Grade(90), Err(errors.New("boom")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "INFO", got["level"])
	assert.Equal(t, "student added", got["message"])

	fields := got["fields"].(map[string]any)
	assert.Equal(t, "roster", fields["component"])
	assert.Equal(t, "Alice", fields["student"])
	assert.Equal(t, float64(90), fields["grade"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf, Level: LevelWarn})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestLogger_WithDoesNotLeakFieldsToParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Output: &buf, Level: LevelInfo})
	_ = parent.With(String("child", "yes"))

	parent.Info("parent")
	assert.NotContains(t, buf.String(), "child")
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Enabled(LevelFatal-1))
	l.Error("dropped")
}

func TestFromContext(t *testing.T) {
	l := Nop()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_MissingIsSilent(t *testing.T) {
	l := FromContext(context.Background())
	assert.False(t, l.Enabled(LevelFatal))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "OFF", LevelOff.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
	assert.Equal(t, LevelOff, ParseLevel("none"))
	assert.Equal(t, LevelFatal, ParseLevel("FATAL"))
}
