package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts handled chat commands by outcome (ok, not_found, invalid, error)
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faultbot_commands_total",
		Help: "The total number of chat commands handled",
	}, []string{"command", "outcome"})

	// GatewayRequestsTotal counts Fault API requests by HTTP status ("error" on transport failure)
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faultbot_gateway_requests_total",
		Help: "The total number of requests sent to the Fault API",
	}, []string{"endpoint", "status"})

	GatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "faultbot_gateway_request_duration_seconds",
		Help:    "Latency of Fault API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RegistryOperationsTotal counts registry store operations by result
	RegistryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faultbot_registry_operations_total",
		Help: "The total number of registry store operations",
	}, []string{"op", "result"})
)

// ObserveRegistry records the outcome of a registry operation
func ObserveRegistry(op string, err error, notFound bool) {
	result := "ok"
	switch {
	case notFound:
		result = "not_found"
	case err != nil:
		result = "error"
	}
	RegistryOperationsTotal.WithLabelValues(op, result).Inc()
}
