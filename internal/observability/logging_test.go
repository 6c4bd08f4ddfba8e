package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.LevelError, LevelForVerbosity(-1))
	assert.Equal(t, slog.LevelWarn, LevelForVerbosity(0))
	assert.Equal(t, slog.LevelInfo, LevelForVerbosity(1))
	assert.Equal(t, slog.LevelDebug, LevelForVerbosity(2))
	assert.Equal(t, slog.LevelDebug, LevelForVerbosity(7))
}

func TestNewHandler_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h, err := NewHandler(&buf, FormatJSON, slog.LevelWarn)
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("hidden")
	logger.Warn("failed to create output directory", "dir", "/out/wfA")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/out/wfA", rec["dir"])
}

func TestNewHandler_AutoFallsBackToText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h, err := NewHandler(&buf, FormatAuto, slog.LevelInfo)
	require.NoError(t, err)
	_, ok := h.(*slog.TextHandler)
	assert.True(t, ok, "non-terminal writer should get a text handler")
}

func TestNewHandler_Terminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h, err := NewHandler(&buf, FormatTerminal, slog.LevelInfo)
	require.NoError(t, err)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))

	slog.New(h).Info("hello", "workflow", "wfA")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "wfA")
}

func TestNewHandler_Unknown(t *testing.T) {
	t.Parallel()
	_, err := NewHandler(&bytes.Buffer{}, "xml", slog.LevelInfo)
	assert.Error(t, err)
}

func TestMetrics_NoopProvider(t *testing.T) {
	t.Parallel()
	m, err := NewMetrics()
	require.NoError(t, err)
	ctx := context.Background()
	m.RecordComparison(ctx, "wfA", "compared", 5)
	m.RecordWorkflowWithDiffs(ctx)
	m.RecordListingFailure(ctx)

	var nilMetrics *Metrics
	nilMetrics.RecordComparison(ctx, "wfA", "compared", 1)
}

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "")
	shutdown, err := InitTracer(context.Background(), "trcompare")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
