package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSendMessage appends a chat message and broadcasts it.
	CommandSendMessage CommandKind = iota
	// CommandGetMessages replays the message log to the requester.
	CommandGetMessages
	// CommandCreateEvent adds an event to the ledger and broadcasts it.
	CommandCreateEvent
	// CommandRSVPEvent toggles the requester's RSVP on an event.
	CommandRSVPEvent
	// CommandGetEvents replays the event ledger to the requester.
	CommandGetEvents
)

var commandNames = map[CommandKind]string{
	CommandSendMessage: "send_message",
	CommandGetMessages: "get_messages",
	CommandCreateEvent: "create_event",
	CommandRSVPEvent:   "rsvp_event",
	CommandGetEvents:   "get_events",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Content string
	Event   EventDraft
	EventID int64
}
