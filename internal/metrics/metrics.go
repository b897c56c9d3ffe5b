package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	propagationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satlook_propagations_total",
			Help: "Total number of SGP4 propagations by result.",
		},
		[]string{"result"},
	)

	passEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satlook_pass_events_total",
			Help: "Total number of pass events reported by kind.",
		},
		[]string{"kind"},
	)

	runDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "satlook_run_duration_seconds",
			Help:    "Wall-clock duration of a tool run in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(passEventsTotal)
	prometheus.MustRegister(runDurationSeconds)
}

// RecordPropagation counts one propagation attempt.
func RecordPropagation(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	propagationsTotal.WithLabelValues(result).Inc()
}

// RecordPassEvent counts one reported rise/peak/set event.
func RecordPassEvent(kind string) {
	passEventsTotal.WithLabelValues(kind).Inc()
}

// ObserveRun records how long a tool run took.
func ObserveRun(tool string, d time.Duration) {
	runDurationSeconds.WithLabelValues(tool).Observe(d.Seconds())
}

// Push sends the default registry to a Prometheus Pushgateway.
// The tools are short-lived batch jobs, so nothing is scraped; an empty
// url disables pushing.
func Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
