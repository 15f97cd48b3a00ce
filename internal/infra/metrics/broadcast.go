package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	broadcastMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_messages_total",
			Help: "Per-subscriber broadcast outcomes.",
		},
		[]string{"result"}, // sent | failed
	)

	broadcastTickErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_tick_errors_total",
			Help: "Count of broadcast ticks aborted before processing subscribers.",
		},
	)

	broadcastLastTick = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_last_tick_timestamp",
			Help: "Unix time of the last completed broadcast tick.",
		},
	)
)

func init() {
	register(broadcastMessages, broadcastTickErrors, broadcastLastTick)
}

func AddBroadcastSent(n int) {
	broadcastMessages.WithLabelValues("sent").Add(float64(n))
}

func AddBroadcastFailed(n int) {
	broadcastMessages.WithLabelValues("failed").Add(float64(n))
}

func IncBroadcastTickError() { broadcastTickErrors.Inc() }

func SetBroadcastLastTick(unix int64) { broadcastLastTick.Set(float64(unix)) }
