package core

// NotificationKind is an outbound event the core emits to clients.
type NotificationKind int

const (
	// NotifyUserCount carries the number of connected sessions.
	NotifyUserCount NotificationKind = iota
	// NotifyUserConnected announces a newly registered session.
	NotifyUserConnected
	// NotifyUserDisconnected announces a removed session.
	NotifyUserDisconnected
	// NotifyNewMessage carries a freshly appended chat message.
	NotifyNewMessage
	// NotifyMessageHistory replays the message log to one client.
	NotifyMessageHistory
	// NotifyNewEvent carries a freshly created event.
	NotifyNewEvent
	// NotifyEventUpdated carries an event after an RSVP toggle.
	NotifyEventUpdated
	// NotifyEventHistory replays the event ledger to one client.
	NotifyEventHistory
	// NotifyError reports a failed operation to its sender.
	NotifyError
)

var notificationNames = map[NotificationKind]string{
	NotifyUserCount:        "user_count",
	NotifyUserConnected:    "user_connected",
	NotifyUserDisconnected: "user_disconnected",
	NotifyNewMessage:       "new_message",
	NotifyMessageHistory:   "message_history",
	NotifyNewEvent:         "new_event",
	NotifyEventUpdated:     "event_updated",
	NotifyEventHistory:     "event_history",
	NotifyError:            "error",
}

// String returns the wire name of the notification.
func (k NotificationKind) String() string {
	if name, ok := notificationNames[k]; ok {
		return name
	}
	return "unknown"
}

// Notification describes what happened in the system. Only the field
// matching Kind is populated.
type Notification struct {
	Kind     NotificationKind
	Count    int
	Session  *Session
	Message  *Message
	Messages []Message
	Event    *Event
	Events   []Event
	Error    *CoreError
}
