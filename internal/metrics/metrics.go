package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Presence metrics
	ConnectedSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "townhall_connected_sessions",
			Help: "Number of registered sessions",
		},
	)

	ConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "townhall_connections_total",
			Help: "Total WebSocket connections registered",
		},
	)

	// Business metrics
	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "townhall_messages_posted_total",
			Help: "Total chat messages appended",
		},
	)

	EventsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "townhall_events_created_total",
			Help: "Total events created",
		},
	)

	RSVPToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "townhall_rsvp_toggles_total",
			Help: "Total RSVP toggles",
		},
		[]string{"action"}, // "add" or "remove"
	)

	// Delivery metrics
	NotificationsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "townhall_notifications_dropped_total",
			Help: "Notifications dropped because a client mailbox was full",
		},
		[]string{"kind"},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "townhall_operation_errors_total",
			Help: "Inbound operations answered with an error",
		},
		[]string{"code"},
	)
)
