package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semrank/semrank/cache"
)

func TestRegisterAndGather(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.IncSearches()
	m.IncSearches()
	m.IncSearchErrors()
	m.ObserveSearchDuration(0.02)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	for _, want := range []string{
		MetricSearches,
		MetricSearchErrors,
		MetricTagMatches,
		MetricFeedbackBatches,
		MetricTrainingRuns,
		MetricSearchDuration,
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}

func TestCacheGauges(t *testing.T) {
	c := cache.New(4)
	c.Set("a", []float32{1})
	c.Get("a")
	c.Get("missing")

	m := NewMetrics()
	m.ObserveCache("query", c)

	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetGauge() != nil {
				values[family.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values[MetricCacheHits])
	assert.Equal(t, 1.0, values[MetricCacheMisses])
}
