package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_received_total",
			Help: "Count of inbound channel messages",
		},
		[]string{"channel"},
	)
	DialogCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_dialogs_total",
			Help: "Count of dialogs begun",
		},
		[]string{"dialog"},
	)
	InvokeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_invoke_events_total",
			Help: "Count of payment invoke events by outcome",
		},
		[]string{"operation", "status"},
	)
	InvokeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_invoke_duration_seconds",
			Help:    "Time taken to process an invoke event",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of outbound messages",
		},
		[]string{"channel"},
	)
)

func Init() {
	prometheus.MustRegister(
		MessagesReceived,
		DialogCounter,
		InvokeCounter,
		InvokeDuration,
		MessagesSent,
	)
}
