package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(LoggerConfig{Version: "1.2.3", Out: &buf, Level: slog.LevelInfo, JSON: true})

	lg.Debug("hidden")
	lg.Info("shell created", "shell_id", "shell-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shell created", entry["msg"])
	assert.Equal(t, "shell-1", entry["shell_id"])
	assert.Equal(t, "1.2.3", entry["version"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(LoggerConfig{Out: &buf, Level: slog.LevelDebug})
	lg.Debug("opened", "backend", "memory")
	assert.Contains(t, buf.String(), "backend=memory")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	lg, th := NewTestLogger()
	ctx := ContextWithLogger(context.Background(), lg)
	FromContext(ctx).Warn("careful", "id", "x")

	entries := th.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, slog.LevelWarn, entries[0].Level)
	assert.Equal(t, "x", entries[0].Attrs["id"])
}

func TestNopLogger(t *testing.T) {
	lg := NewNopLogger()
	assert.False(t, lg.Enabled(context.Background(), slog.LevelError))
}
