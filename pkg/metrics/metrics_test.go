package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/slots", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBConnections(1, 1, 0)
		m.AddSlotsGenerated(4)
		m.IncSlotConflict()
		m.IncStockConflict()
		m.IncRequestOutcome("confirmed")
		m.IncInterventionTransition("completed")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.AddSlotsGenerated(4)
	m.AddSlotsGenerated(0)
	m.IncSlotConflict()
	m.IncRequestOutcome("confirmed")
	m.IncRequestOutcome("confirmed")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(4), testutil.ToFloat64(m.slotsGenerated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotConflicts))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestOutcomes.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
}
