package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/forgebridge/forgebridge/pkg/command"
)

var (
	metricCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forgebridge",
		Name:      "commands_total",
		Help:      "Commands dispatched, by name and outcome.",
	}, []string{"command", "status"})

	metricCommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "forgebridge",
		Name:      "command_duration_seconds",
		Help:      "Command execution latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})

	metricEventClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "forgebridge",
		Name:      "event_clients",
		Help:      "Connected WebSocket event subscribers.",
	})
)

// MetricsMiddleware records per-command counters and latency. Install it
// on the registry before serving.
func MetricsMiddleware() command.Middleware {
	return func(next command.Executor) command.Executor {
		return func(ctx *command.ExecutionContext) (map[string]any, error) {
			data, err := next(ctx)
			status := "success"
			if err != nil {
				status = "failure"
			}
			metricCommands.WithLabelValues(ctx.Command, status).Inc()
			metricCommandDuration.WithLabelValues(ctx.Command).
				Observe(time.Since(ctx.StartTime).Seconds())
			return data, err
		}
	}
}
