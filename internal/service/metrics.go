package service

import (
	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "position"

var commandsEnqueued = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "commands_enqueued_total",
		Help:      "Matching engine commands written to the outbox",
	},
	[]string{"code"},
)

var commandsPublished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "commands_published_total",
		Help:      "Matching engine commands delivered to the command stream",
	},
	[]string{"code"},
)

// relayLag time a command waited in the outbox before delivery
var relayLag = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "publish_lag_seconds",
		Help:      "Delay between enqueue and publish of a command",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	},
)

var cacheRepairs = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "cache",
		Name:      "repairs_total",
		Help:      "Positions written back to the cache from the durable store",
	},
)

var closeOrders = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "lifecycle",
		Name:      "close_orders_total",
		Help:      "Close orders persisted, by order type",
	},
	[]string{"type"},
)

func countEnqueued(commands ...*model.Command) {
	for _, c := range commands {
		commandsEnqueued.WithLabelValues(string(c.Code)).Inc()
	}
}
