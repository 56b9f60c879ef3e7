// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusworld_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WebSocketConnectionsTotal is the gauge of active feed subscribers.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statusworld_websocket_connections_total",
		Help: "Total number of active WebSocket feed subscriptions",
	})

	// WebSocketBackpressureDrops counts messages dropped on slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusworld_websocket_backpressure_drops_total",
		Help: "Messages dropped because a client send buffer was full or closed",
	}, []string{"hub", "reason"})

	// FeedEventsTotal counts published feed events by type.
	FeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusworld_feed_events_total",
		Help: "Total feed events published by type",
	}, []string{"event_type"})

	// StatusCreatedTotal counts created statuses by media kind.
	StatusCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusworld_status_created_total",
		Help: "Total statuses created by media kind",
	}, []string{"media_kind"})

	// MediaUploadBytes records upload sizes by kind.
	MediaUploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statusworld_media_upload_bytes",
		Help:    "Uploaded media size in bytes by kind",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"kind"})
)
