package engine

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "jsonc"

// Metrics holds the Prometheus collectors updated by an Engine.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ingestedChunks     prometheus.Counter
	ingestedRecords    prometheus.Counter
	actions            *prometheus.CounterVec
	errors             *prometheus.CounterVec
	outputBytes        prometheus.Counter
	outstandingHandles prometheus.Gauge
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ingestedChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ingested_chunks_total",
			Help:      "Number of chunks appended to the ingestion buffer.",
		}),
		ingestedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ingested_records_total",
			Help:      "Number of records appended to the ingestion buffer.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "Number of actions run, by action name.",
		}, []string{"action"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "errors_total",
			Help:      "Number of failed operations, by operation.",
		}, []string{"op"}),
		outputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "output_bytes_total",
			Help:      "Bytes handed out through output chunks.",
		}),
		outstandingHandles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "outstanding_handles",
			Help:      "Engine-produced results not yet released by the caller.",
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register engine metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ingestedChunks,
		m.ingestedRecords,
		m.actions,
		m.errors,
		m.outputBytes,
		m.outstandingHandles,
	}
}

func (m *Metrics) recordIngest(records int) {
	if m == nil {
		return
	}
	m.ingestedChunks.Inc()
	m.ingestedRecords.Add(float64(records))
}

func (m *Metrics) recordAction(name string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(name).Inc()
}

func (m *Metrics) recordError(op string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op).Inc()
}

func (m *Metrics) recordOutput(n int) {
	if m == nil {
		return
	}
	m.outputBytes.Add(float64(n))
}

func (m *Metrics) setOutstanding(n int64) {
	if m == nil {
		return
	}
	m.outstandingHandles.Set(float64(n))
}
