package logger_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PirateLibrary/PirateLibrary/internal/logger"
)

func levelCount(t *testing.T, level string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "piratelibrary_log_events_total" {
			continue
		}

		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "level" && l.GetValue() == level {
					return m.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}

func TestPrometheusHook(t *testing.T) {
	hook := logger.NewPrometheusHook("piratelibrary")

	warnBefore := levelCount(t, "warn")
	errorBefore := levelCount(t, "error")

	hook.Run(nil, zerolog.WarnLevel, "")
	hook.Run(nil, zerolog.WarnLevel, "")
	hook.Run(nil, zerolog.ErrorLevel, "")
	hook.Run(nil, zerolog.NoLevel, "")

	assert.InDelta(t, warnBefore+2, levelCount(t, "warn"), 0)
	assert.InDelta(t, errorBefore+1, levelCount(t, "error"), 0)

	// a second hook shares the registered counter
	require.NotPanics(t, func() { logger.NewPrometheusHook("other").Run(nil, zerolog.WarnLevel, "") })
	assert.InDelta(t, warnBefore+3, levelCount(t, "warn"), 0)
}
