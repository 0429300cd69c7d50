package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-scene/internal/frameclock"
	"github.com/grindlemire/go-scene/internal/message"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTick(frameclock.Prediction{}, 3, time.Millisecond)
		m.ObserveMessage(message.KindAddNode)
		m.ObserveVSync()
		m.ObserveSleep()
	})
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTick(frameclock.Prediction{Delta: 0.016}, 4, time.Millisecond)
	m.ObserveTick(frameclock.Prediction{Delta: 0.016, ExtraUpdates: 1}, 5, time.Millisecond)
	m.ObserveMessage(message.KindAddNode)
	m.ObserveMessage(message.KindAddNode)
	m.ObserveMessage(message.KindConnectNode)
	m.ObserveVSync()
	m.ObserveSleep()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extraUpdates))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.nodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.messagesApplied.WithLabelValues("add-node")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesApplied.WithLabelValues("connect-node")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.vsyncs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sleeps))

	expected := `
# HELP scene_sleeps_total Number of times the update loop went to sleep
# TYPE scene_sleeps_total counter
scene_sleeps_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "scene_sleeps_total"))
}
