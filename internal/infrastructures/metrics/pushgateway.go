package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder collects the metrics of a single run on its own registry and
// pushes them once the run is over.
type Recorder struct {
	registry *prometheus.Registry
	pusher   *push.Pusher

	upstreamMatches prometheus.Gauge
	todayMatches    prometheus.Gauge
	fetchFailures   prometheus.Counter
	deliveries      *prometheus.CounterVec
}

func NewRecorder(pushgatewayURL, job string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		upstreamMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "digest_upstream_matches",
			Help: "Upcoming matches returned by the upstream in the last run",
		}),
		todayMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "digest_today_matches",
			Help: "Matches kept for today in the last run",
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "digest_fetch_failures_total",
			Help: "Upstream fetches that failed",
		}),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_deliveries_total",
				Help: "Notification deliveries by channel and result",
			},
			[]string{"channel", "result"},
		),
	}

	r.registry.MustRegister(r.upstreamMatches, r.todayMatches, r.fetchFailures, r.deliveries)

	if pushgatewayURL != "" {
		r.pusher = push.New(pushgatewayURL, job).Gatherer(r.registry)
	}

	return r
}

func (r *Recorder) ObserveFetch(upstream int, err error) {
	if err != nil {
		r.fetchFailures.Inc()
	}
	r.upstreamMatches.Set(float64(upstream))
}

func (r *Recorder) ObserveDigest(today int) {
	r.todayMatches.Set(float64(today))
}

func (r *Recorder) ObserveDelivery(channel string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.deliveries.WithLabelValues(channel, result).Inc()
}

// Push is a no-op when no Pushgateway is configured.
func (r *Recorder) Push(ctx context.Context) error {
	if r.pusher == nil {
		return nil
	}
	if err := r.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
