package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := GlobalLogger
	buf := &bytes.Buffer{}
	SetOutput(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { GlobalLogger = prev })
	return buf
}

func TestLogAsyncOperationError(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithCorrelationID(context.Background(), "corr-1")

	LogAsyncOperationError(ctx, "toggle_like", errors.New("timeout"), map[string]interface{}{
		"item_id": "post_1",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "async operation failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "toggle_like", entry["operation"])
	assert.Equal(t, "timeout", entry["error"])
	assert.Equal(t, "post_1", entry["item_id"])
	assert.Equal(t, "corr-1", entry["correlation_id"])
}

func TestRepoLogger_Disabled(t *testing.T) {
	buf := captureLogs(t)
	prev := Config
	Config.EnableRepoLogging = false
	t.Cleanup(func() { Config = prev })

	NewRepoLogger("posts").LogUpdate(context.Background(), map[string]interface{}{"id": "post_1"})
	assert.Zero(t, buf.Len())
}

func TestRepoLogger_Update(t *testing.T) {
	buf := captureLogs(t)

	NewRepoLogger("posts").LogUpdate(context.Background(), map[string]interface{}{"id": "post_1", "is_liked": true})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "repository update", entry["msg"])
	assert.Equal(t, "posts", entry["table"])
	assert.Equal(t, true, entry["is_liked"])
}

func TestRecordToggle(t *testing.T) {
	before := testutil.ToFloat64(InteractionToggles.WithLabelValues("like", "on"))
	RecordToggle("like", true)
	assert.Equal(t, before+1, testutil.ToFloat64(InteractionToggles.WithLabelValues("like", "on")))
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "instafeed-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop")
	defer span.End()
	assert.NotNil(t, ctx)
	span.SetError(errors.New("ignored"))
}
