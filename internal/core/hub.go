package core

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/rotech/townhall/internal/metrics"
)

// Hub routes client operations to the registry, message log and event
// ledger, and decides which notifications go to whom.
type Hub struct {
	registry *Registry
	messages *MessageLog
	events   *EventLedger
	log      *zerolog.Logger
}

// NewHub builds a hub over the given shared resources. Nil resources are
// replaced with empty ones.
func NewHub(registry *Registry, messages *MessageLog, events *EventLedger, logger *zerolog.Logger) *Hub {
	if registry == nil {
		registry = NewRegistry()
	}
	if messages == nil {
		messages = NewMessageLog()
	}
	if events == nil {
		events = NewEventLedger()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry: registry,
		messages: messages,
		events:   events,
		log:      logger,
	}
}

// Registry exposes the connection registry for read-only snapshots.
func (h *Hub) Registry() *Registry { return h.registry }

// Messages exposes the message log for read-only snapshots.
func (h *Hub) Messages() *MessageLog { return h.messages }

// Events exposes the event ledger for read-only snapshots.
func (h *Hub) Events() *EventLedger { return h.events }

// Connect registers client and announces it. The new client receives its
// own count before the broadcast.
func (h *Hub) Connect(req ConnectRequest, client *Client) *Session {
	session, count := h.registry.Register(req, client)

	metrics.ConnectionsTotal.Inc()
	metrics.ConnectedSessions.Set(float64(count))

	h.log.Info().
		Str("session_id", session.SessionID).
		Str("user", session.Name).
		Str("remote_addr", session.RemoteAddr).
		Int("count", count).
		Msg("user connected")

	h.send(client, &Notification{Kind: NotifyUserCount, Count: count})
	h.broadcast(&Notification{Kind: NotifyUserCount, Count: count})
	h.broadcast(&Notification{Kind: NotifyUserConnected, Session: session})
	return session
}

// Disconnect removes client's session, if any, and announces the new count.
// Repeated calls for the same client are no-ops.
func (h *Hub) Disconnect(client *Client) {
	session, count, ok := h.registry.Unregister(client)
	if !ok {
		return
	}
	metrics.ConnectedSessions.Set(float64(count))

	h.log.Info().
		Str("session_id", session.SessionID).
		Str("user", session.Name).
		Int("count", count).
		Msg("user disconnected")

	h.broadcast(&Notification{Kind: NotifyUserCount, Count: count})
	h.broadcast(&Notification{Kind: NotifyUserDisconnected, Session: session})
}

// Dispatch executes one inbound command. Failures are reported to client
// only; a panic is recovered and surfaced as an internal error.
func (h *Hub) Dispatch(client *Client, cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().
				Str("client_id", client.ID).
				Str("command", cmd.Kind.String()).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("command panicked")
			h.Fail(client, InternalError())
		}
	}()

	if err := h.dispatch(client, cmd); err != nil {
		ce, known := AsCoreError(err)
		if !known {
			h.log.Error().Err(err).Str("client_id", client.ID).Str("command", cmd.Kind.String()).Msg("command failed")
		}
		h.Fail(client, ce)
	}
}

func (h *Hub) dispatch(client *Client, cmd Command) error {
	switch cmd.Kind {
	case CommandSendMessage:
		return h.sendMessage(client, cmd.Content)
	case CommandGetMessages:
		h.send(client, &Notification{Kind: NotifyMessageHistory, Messages: h.messages.History()})
		return nil
	case CommandCreateEvent:
		return h.createEvent(client, cmd.Event)
	case CommandRSVPEvent:
		return h.toggleRSVP(client, cmd.EventID)
	case CommandGetEvents:
		h.send(client, &Notification{Kind: NotifyEventHistory, Events: h.events.History()})
		return nil
	default:
		return BadRequestError("unknown message type")
	}
}

func (h *Hub) sendMessage(client *Client, content string) error {
	sender := h.senderName(client)
	msg, err := h.messages.Append(content, sender)
	if err != nil {
		return err
	}
	metrics.MessagesPosted.Inc()
	h.log.Debug().Str("sender", sender).Int("length", len(content)).Msg("new message")

	h.broadcast(&Notification{Kind: NotifyNewMessage, Message: &msg})
	return nil
}

func (h *Hub) createEvent(client *Client, draft EventDraft) error {
	creator := h.senderName(client)
	event, err := h.events.Create(draft, creator)
	if err != nil {
		return err
	}
	metrics.EventsCreated.Inc()
	h.log.Info().Int64("event_id", event.ID).Str("created_by", creator).Str("title", event.Title).Msg("event created")

	h.broadcast(&Notification{Kind: NotifyNewEvent, Event: &event})
	return nil
}

func (h *Hub) toggleRSVP(client *Client, eventID int64) error {
	if eventID == 0 {
		return ValidationError(MsgEventIDRequired)
	}
	name := h.senderName(client)
	event, attending, err := h.events.ToggleRSVP(eventID, name)
	if err != nil {
		return err
	}

	action := "remove"
	if attending {
		action = "add"
	}
	metrics.RSVPToggles.WithLabelValues(action).Inc()
	h.log.Info().Int64("event_id", eventID).Str("user", name).Str("action", action).Msg("rsvp toggled")

	h.broadcast(&Notification{Kind: NotifyEventUpdated, Event: &event})
	return nil
}

// Fail sends err to client alone.
func (h *Hub) Fail(client *Client, err *CoreError) {
	metrics.OperationErrors.WithLabelValues(err.Code).Inc()
	h.send(client, &Notification{Kind: NotifyError, Error: err})
}

func (h *Hub) senderName(client *Client) string {
	if session, ok := h.registry.FindByClient(client); ok {
		return session.Name
	}
	return AnonymousName
}

func (h *Hub) send(client *Client, n *Notification) {
	if !client.deliver(n) {
		metrics.NotificationsDropped.WithLabelValues(n.Kind.String()).Inc()
		h.log.Warn().Str("client_id", client.ID).Str("kind", n.Kind.String()).Msg("mailbox full, notification dropped")
	}
}

// broadcast delivers n to every registered client. A full mailbox only
// loses that client's copy.
func (h *Hub) broadcast(n *Notification) {
	for _, client := range h.registry.Clients() {
		h.send(client, n)
	}
}
