package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeSendMessage = "send_message"
	InboundTypeGetMessages = "get_messages"
	InboundTypeCreateEvent = "create_event"
	InboundTypeRSVPEvent   = "rsvp_event"
	InboundTypeGetEvents   = "get_events"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	// TimeLayout renders connect and message timestamps.
	TimeLayout = "2006-01-02 15:04:05"
)

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	Content string `json:"content"`
}

// CreateEventData describes a new event.
type CreateEventData struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// RSVPEventData toggles the caller's RSVP on an event.
type RSVPEventData struct {
	EventID int64 `json:"eventId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserCount carries the number of connected users.
type UserCount struct {
	Count int `json:"count"`
}

// User is the public view of a connected session.
type User struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	ConnectedAt string `json:"connected_at"`
	IP          string `json:"ip"`
	SocketID    string `json:"socket_id"`
}

// UserEvent wraps a user for user_connected and user_disconnected.
type UserEvent struct {
	User User `json:"user"`
}

// Message is a chat message as sent to clients.
type Message struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Event is a community event as sent to clients.
type Event struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
	RSVPs       []string `json:"rsvps"`
}

// Presence is the REST snapshot of connected users.
type Presence struct {
	Count int    `json:"count"`
	Users []User `json:"users"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
