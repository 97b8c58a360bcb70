package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// levelCounter is registered once, the first hook created owns it.
var levelCounter *prometheus.CounterVec //nolint:gochecknoglobals

// PrometheusHook feeds piratelibrary_log_events_total.
type PrometheusHook struct{}

// Run counts the event under its level label; level-less events are skipped.
func (PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel {
		return
	}

	levelCounter.WithLabelValues(level.String()).Inc()
}

// NewPrometheusHook registers the per level counter for service on first use.
// Warnings and errors of the daemon then show up on /metrics.
func NewPrometheusHook(service string) PrometheusHook {
	if levelCounter == nil {
		levelCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "piratelibrary_log_events_total",
				Help:        "Log events written by the daemon, per level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)
	}

	return PrometheusHook{}
}
