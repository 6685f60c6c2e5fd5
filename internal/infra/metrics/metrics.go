// internal/infra/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the poller records its cycle outcomes through.
type Recorder interface {
	RecordCycle()
	RecordCycleError(kind string)
	RecordFetchLatency(d time.Duration)
	RecordNotificationSent()
	RecordDeliveryFailure()
	RecordPollSuccess(at time.Time)
}

// Collector implements Recorder on top of Prometheus metrics.
type Collector struct {
	cycles            prometheus.Counter
	cycleErrors       *prometheus.CounterVec
	fetchLatency      prometheus.Histogram
	notificationsSent prometheus.Counter
	deliveryFailures  prometheus.Counter
	lastSuccess       prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homework_bot_poll_cycles_total",
			Help: "Total number of poll cycles executed.",
		}),
		cycleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homework_bot_poll_errors_total",
			Help: "Total number of failed poll cycles, by error kind.",
		}, []string{"kind"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "homework_bot_fetch_latency_seconds",
			Help:    "Latency of homework status API fetches in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homework_bot_notifications_sent_total",
			Help: "Total number of status notifications delivered to the chat.",
		}),
		deliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homework_bot_delivery_failures_total",
			Help: "Total number of failed Telegram deliveries.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "homework_bot_last_poll_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful poll cycle.",
		}),
	}

	reg.MustRegister(
		c.cycles,
		c.cycleErrors,
		c.fetchLatency,
		c.notificationsSent,
		c.deliveryFailures,
		c.lastSuccess,
	)

	return c
}

func (c *Collector) RecordCycle() { c.cycles.Inc() }

func (c *Collector) RecordCycleError(kind string) { c.cycleErrors.WithLabelValues(kind).Inc() }

func (c *Collector) RecordFetchLatency(d time.Duration) { c.fetchLatency.Observe(d.Seconds()) }

func (c *Collector) RecordNotificationSent() { c.notificationsSent.Inc() }

func (c *Collector) RecordDeliveryFailure() { c.deliveryFailures.Inc() }

func (c *Collector) RecordPollSuccess(at time.Time) { c.lastSuccess.Set(float64(at.Unix())) }

// Router returns the ops HTTP handler exposing /metrics for Prometheus
// scrapes and a trivial /healthz liveness probe.
func Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}
