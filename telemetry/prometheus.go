package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports copy engine activity as Prometheus metrics.
// It implements goclone.Observer and is safe for concurrent sessions.
type PrometheusObserver struct {
	sessions prometheus.Counter
	objects  prometheus.Counter
	hits     prometheus.Counter
	duration prometheus.Histogram
}

// NewPrometheusObserver creates an observer and registers its collectors
// with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goclone_sessions_total",
			Help: "Number of top-level copy sessions.",
		}),
		objects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goclone_objects_copied_total",
			Help: "Number of objects duplicated across all sessions.",
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goclone_identity_hits_total",
			Help: "Number of identity map hits (shared references and cycles).",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goclone_session_duration_seconds",
			Help:    "Duration of copy sessions.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	for _, c := range []prometheus.Collector{o.sessions, o.objects, o.hits, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// SessionStart implements goclone.Observer.
func (o *PrometheusObserver) SessionStart() {
	o.sessions.Inc()
}

// SessionEnd implements goclone.Observer.
func (o *PrometheusObserver) SessionEnd(d time.Duration, objects int) {
	o.duration.Observe(d.Seconds())
	o.objects.Add(float64(objects))
}

// IdentityHit implements goclone.Observer.
func (o *PrometheusObserver) IdentityHit() {
	o.hits.Inc()
}
