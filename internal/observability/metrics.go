package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the import pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	jobs          *prometheus.CounterVec
	rows          *prometheus.CounterVec
	batchDuration prometheus.Histogram
	deliveries    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "product_import_jobs_total",
				Help: "Import jobs that reached a terminal state",
			},
			[]string{"outcome"},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "product_import_rows_total",
				Help: "Imported rows by result",
			},
			[]string{"result"},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "product_import_batch_duration_seconds",
				Help:    "Time spent writing one batch to the product store",
				Buckets: prometheus.DefBuckets,
			},
		),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Webhook delivery attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.jobs,
		m.rows,
		m.batchDuration,
		m.deliveries,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) JobFinished(outcome string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.batchDuration.Observe(d.Seconds())
}

func (m *Metrics) AddRows(inserted, updated int64) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues("inserted").Add(float64(inserted))
	m.rows.WithLabelValues("updated").Add(float64(updated))
}

func (m *Metrics) AddSkippedRows(skipped int64) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues("skipped").Add(float64(skipped))
}

func (m *Metrics) WebhookDelivered(ok bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.deliveries.WithLabelValues(outcome).Inc()
}
