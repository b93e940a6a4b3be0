package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transport metrics
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "peerchat_messages_sent_total",
			Help: "Total chat payloads flushed to a peer",
		},
	)

	MessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "peerchat_messages_received_total",
			Help: "Total chat payloads decoded from inbound connections",
		},
	)

	DeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerchat_delivery_failures_total",
			Help: "Total outbound deliveries that failed",
		},
		[]string{"op"}, // "dial", "encode", "write", "open", ...
	)

	DecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerchat_decode_failures_total",
			Help: "Total inbound connections dropped because of a bad payload",
		},
		[]string{"listener"},
	)

	// Side channel
	FilesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "peerchat_files_sent_total",
			Help: "Total files streamed to peers",
		},
	)

	FilesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "peerchat_files_received_total",
			Help: "Total files persisted from peers",
		},
	)

	FileBytesTransferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peerchat_file_bytes_total",
			Help: "Raw file bytes moved over the side channel",
		},
		[]string{"direction"}, // "out" or "in"
	)

	// Storage
	LogAppends = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "peerchat_log_appends_total",
			Help: "Total records appended to conversation logs",
		},
	)

	LogRewriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "peerchat_log_rewrite_seconds",
			Help:    "Time spent loading and rewriting a conversation log",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
	)
)
