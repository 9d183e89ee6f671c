package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zap.InfoLevel, false},
		{"debug", zap.DebugLevel, false},
		{"WARN", zap.WarnLevel, false},
		{"error", zap.ErrorLevel, false},
		{"loud", zap.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", FormatConsole)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger("warn", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))

	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}

func TestLoggingObservabilityHook(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hook := NewLoggingObservabilityHook(zap.New(core))
	ctx := context.Background()
	meta := map[string]any{"type": "config.Server"}

	hook.OnProcessStart(ctx, "serialize", meta)
	hook.OnProcessComplete(ctx, "serialize", time.Millisecond, nil, meta)
	hook.OnProcessComplete(ctx, "deserialize", time.Millisecond, errors.New("boom"), meta)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "operation started", entries[0].Message)
	assert.Equal(t, "operation completed", entries[1].Message)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "deserialize", entries[2].ContextMap()["operation"])
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestMetricsObservabilityHook(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	hook := NewMetricsObservabilityHook(collector)
	ctx := context.Background()
	meta := map[string]any{"type": "config.Server"}

	hook.OnProcessStart(ctx, "serialize", meta)
	hook.OnProcessComplete(ctx, "serialize", 5*time.Millisecond, nil, meta)
	hook.OnProcessStart(ctx, "serialize", meta)
	hook.OnError(ctx, "serialize", errors.New("boom"), meta)
	hook.OnProcessComplete(ctx, "serialize", time.Millisecond, errors.New("boom"), meta)

	assert.Equal(t, int64(2), collector.Counter(MetricStarted, map[string]string{"operation": "serialize", "type": "config.Server"}))
	assert.Equal(t, int64(1), collector.CounterTotal(MetricSucceeded))
	assert.Equal(t, int64(1), collector.CounterTotal(MetricFailed))
	assert.Equal(t, int64(1), collector.CounterTotal(MetricErrors))

	timings := collector.Timings(MetricDuration, map[string]string{"operation": "serialize", "type": "config.Server", "status": "success"})
	assert.Equal(t, []time.Duration{5 * time.Millisecond}, timings)
}

type countingHook struct {
	NoOpObservabilityHook
	starts int
}

func (c *countingHook) OnProcessStart(context.Context, string, map[string]any) { c.starts++ }

func TestCompositeObservabilityHook(t *testing.T) {
	a, b := &countingHook{}, &countingHook{}
	hook := NewCompositeObservabilityHook(a, b, NoOpObservabilityHook{})

	hook.OnProcessStart(context.Background(), "serialize", nil)
	hook.OnProcessComplete(context.Background(), "serialize", 0, nil, nil)
	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, b.starts)
}

func TestInMemoryMetricsCollector(t *testing.T) {
	m := NewInMemoryMetricsCollector()
	m.IncrementCounter("c", nil)
	m.IncrementCounter("c", map[string]string{"b": "2", "a": "1"})
	m.SetGauge("g", 1.5, nil)

	assert.Equal(t, int64(1), m.Counter("c", nil))
	assert.Equal(t, int64(1), m.Counter("c", map[string]string{"a": "1", "b": "2"}))
	assert.Equal(t, int64(2), m.CounterTotal("c"))
	assert.Equal(t, 1.5, m.Gauge("g", nil))
	assert.Equal(t, "c,a=1,b=2", seriesKey("c", map[string]string{"b": "2", "a": "1"}))

	m.Reset()
	assert.Zero(t, m.CounterTotal("c"))
	assert.NoError(t, m.Flush())
}
