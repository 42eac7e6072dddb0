package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for person fetch sequences.
type Metrics struct {
	registry *prometheus.Registry

	SequencesStarted  prometheus.Counter
	SequencesFinished *prometheus.CounterVec
	PagesFetched      prometheus.Counter
	PersonsLoaded     prometheus.Gauge
	SequenceDuration  prometheus.Histogram
}

// New creates the collectors and registers them on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SequencesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ppl_fetch_sequences_started_total",
			Help: "Total number of person fetch sequences started",
		}),
		SequencesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppl_fetch_sequences_finished_total",
			Help: "Total number of person fetch sequences finished, by final status",
		}, []string{"status"}),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ppl_fetch_pages_total",
			Help: "Total number of person pages fetched successfully",
		}),
		PersonsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ppl_persons_loaded",
			Help: "Number of persons held by the current fetch sequence",
		}),
		SequenceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ppl_fetch_sequence_duration_seconds",
			Help:    "Duration of person fetch sequences",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.SequencesStarted,
		m.SequencesFinished,
		m.PagesFetched,
		m.PersonsLoaded,
		m.SequenceDuration,
	)

	return m
}

func (m *Metrics) IncrementSequencesStarted() {
	m.SequencesStarted.Inc()
}

func (m *Metrics) ObserveSequenceFinished(status string, seconds float64) {
	m.SequencesFinished.WithLabelValues(status).Inc()
	m.SequenceDuration.Observe(seconds)
}

func (m *Metrics) IncrementPagesFetched() {
	m.PagesFetched.Inc()
}

func (m *Metrics) SetPersonsLoaded(count int) {
	m.PersonsLoaded.Set(float64(count))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
