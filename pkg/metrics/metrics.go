package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"tourbook"`
	Path      string `env:"METRICS_PATH" envDefault:"/metrics"`
	// Runtime adds the Go and process collectors.
	Runtime bool `env:"METRICS_RUNTIME" envDefault:"true"`
}

// Collector records booking activity. It satisfies booking.Observer.
type Collector struct {
	registry *prometheus.Registry

	sessionsOpened prometheus.Counter
	sessionsActive prometheus.Gauge
	submissions    *prometheus.CounterVec
	ackDuration    prometheus.Histogram
}

// NewCollector registers the booking metrics on registry, or on a fresh
// registry when it is nil.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "tourbook"
	}

	c := &Collector{
		registry: registry,
		sessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "booking",
			Name:      "sessions_opened_total",
			Help:      "Booking form sessions opened.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "booking",
			Name:      "sessions_active",
			Help:      "Booking form sessions currently held in memory.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Submit attempts by outcome.",
		}, []string{"outcome"}),
		ackDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "booking",
			Name:      "acknowledgement_duration_seconds",
			Help:      "Time taken to acknowledge an enquiry.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 3, 5, 10},
		}),
	}

	registry.MustRegister(c.sessionsOpened, c.sessionsActive, c.submissions, c.ackDuration)
	if cfg.Runtime {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

func (c *Collector) SessionOpened() {
	c.sessionsOpened.Inc()
	c.sessionsActive.Inc()
}

func (c *Collector) SessionClosed() {
	c.sessionsActive.Dec()
}

// Submission counts a submit attempt. A positive elapsed is the time the
// acknowledgement took.
func (c *Collector) Submission(outcome string, elapsed time.Duration) {
	c.submissions.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		c.ackDuration.Observe(elapsed.Seconds())
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
