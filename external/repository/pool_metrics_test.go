package repository

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolStatsCollector_Describe(t *testing.T) {
	collector := NewPoolStatsCollector(nil, "meetai")

	ch := make(chan *prometheus.Desc, 10)
	collector.Describe(ch)
	close(ch)

	var names []string
	for d := range ch {
		names = append(names, d.String())
	}
	require.Len(t, names, 4)
	for i, want := range []string{
		"meetai_db_pool_total_conns",
		"meetai_db_pool_idle_conns",
		"meetai_db_pool_acquired_conns",
		"meetai_db_pool_max_conns",
	} {
		assert.True(t, strings.Contains(names[i], want), "descriptor %d should mention %s: %s", i, want, names[i])
	}
}

func TestPoolStatsCollector_CollectWithNilPool(t *testing.T) {
	collector := NewPoolStatsCollector(nil, "meetai")

	ch := make(chan prometheus.Metric, 10)
	collector.Collect(ch)
	close(ch)

	assert.Empty(t, ch)
}
