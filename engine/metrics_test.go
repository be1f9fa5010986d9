package engine

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.recordIngest(3)
	m.recordAction("sort")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "jsonc_ingested_chunks_total")
	require.Contains(t, names, "jsonc_ingested_records_total")
	require.Contains(t, names, "jsonc_actions_total")
	require.Contains(t, names, "jsonc_outstanding_handles")
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	require.Error(t, err)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.recordIngest(1)
		m.recordAction("sort")
		m.recordError("ingest_chunk")
		m.recordOutput(10)
		m.setOutstanding(2)
	})
}

func TestMetrics_Values(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	m.recordIngest(2)
	m.recordIngest(5)
	m.recordOutput(128)
	m.recordError("run_action")
	m.setOutstanding(4)

	require.InDelta(t, 2, testutil.ToFloat64(m.ingestedChunks), 0)
	require.InDelta(t, 7, testutil.ToFloat64(m.ingestedRecords), 0)
	require.InDelta(t, 128, testutil.ToFloat64(m.outputBytes), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.errors.WithLabelValues("run_action")), 0)
	require.InDelta(t, 4, testutil.ToFloat64(m.outstandingHandles), 0)
}
