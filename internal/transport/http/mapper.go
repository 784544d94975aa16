package http

import (
	"bytes"
	"encoding/json"

	"github.com/rotech/townhall/internal/core"
	"github.com/rotech/townhall/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *core.CoreError) {
	switch inbound.Type {
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := decodeData(inbound.Data, &msg); err != nil {
			return nil, core.BadRequestError("invalid send_message payload")
		}
		return &core.Command{Kind: core.CommandSendMessage, Content: msg.Content}, nil
	case proto.InboundTypeGetMessages:
		return &core.Command{Kind: core.CommandGetMessages}, nil
	case proto.InboundTypeCreateEvent:
		var ev proto.CreateEventData
		if err := decodeData(inbound.Data, &ev); err != nil {
			return nil, core.BadRequestError("invalid create_event payload")
		}
		return &core.Command{
			Kind: core.CommandCreateEvent,
			Event: core.EventDraft{
				Title:       ev.Title,
				Date:        ev.Date,
				Time:        ev.Time,
				Location:    ev.Location,
				Description: ev.Description,
			},
		}, nil
	case proto.InboundTypeRSVPEvent:
		var rsvp proto.RSVPEventData
		if err := decodeData(inbound.Data, &rsvp); err != nil {
			return nil, core.BadRequestError("invalid rsvp_event payload")
		}
		return &core.Command{Kind: core.CommandRSVPEvent, EventID: rsvp.EventID}, nil
	case proto.InboundTypeGetEvents:
		return &core.Command{Kind: core.CommandGetEvents}, nil
	default:
		return nil, core.BadRequestError("unknown message type")
	}
}

// decodeData treats an absent or null payload as an empty object.
func decodeData(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func outboundFromNotification(n *core.Notification) proto.Outbound {
	switch n.Kind {
	case core.NotifyUserCount:
		return event(n.Kind, proto.UserCount{Count: n.Count})
	case core.NotifyUserConnected, core.NotifyUserDisconnected:
		if n.Session == nil {
			return proto.Outbound{Type: proto.OutboundTypeEvent, Event: n.Kind.String()}
		}
		return event(n.Kind, proto.UserEvent{User: userFromSession(*n.Session)})
	case core.NotifyNewMessage:
		if n.Message == nil {
			return proto.Outbound{Type: proto.OutboundTypeEvent, Event: n.Kind.String()}
		}
		return event(n.Kind, messageFromCore(*n.Message))
	case core.NotifyMessageHistory:
		return event(n.Kind, messagesFromCore(n.Messages))
	case core.NotifyNewEvent, core.NotifyEventUpdated:
		if n.Event == nil {
			return proto.Outbound{Type: proto.OutboundTypeEvent, Event: n.Kind.String()}
		}
		return event(n.Kind, eventFromCore(*n.Event))
	case core.NotifyEventHistory:
		return event(n.Kind, eventsFromCore(n.Events))
	case core.NotifyError:
		if n.Error == nil {
			return errorOutbound(core.InternalError())
		}
		return errorOutbound(n.Error)
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func event(kind core.NotificationKind, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: kind.String(), Data: data}
}

func errorOutbound(err *core.CoreError) proto.Outbound {
	return proto.Outbound{
		Type:  proto.OutboundTypeError,
		Event: core.NotifyError.String(),
		Error: &proto.Error{Code: err.Code, Message: err.Message},
	}
}

func userFromSession(s core.Session) proto.User {
	socketID := ""
	if s.Client != nil {
		socketID = s.Client.ID
	}
	return proto.User{
		ID:          s.UserID,
		SessionID:   s.SessionID,
		Name:        s.Name,
		ConnectedAt: s.ConnectedAt.Format(proto.TimeLayout),
		IP:          s.RemoteAddr,
		SocketID:    socketID,
	}
}

func usersFromSessions(sessions []core.Session) []proto.User {
	users := make([]proto.User, 0, len(sessions))
	for _, s := range sessions {
		users = append(users, userFromSession(s))
	}
	return users
}

func messageFromCore(m core.Message) proto.Message {
	return proto.Message{
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp.Format(proto.TimeLayout),
	}
}

func messagesFromCore(msgs []core.Message) []proto.Message {
	out := make([]proto.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageFromCore(m))
	}
	return out
}

func eventFromCore(e core.Event) proto.Event {
	rsvps := e.RSVPs
	if rsvps == nil {
		rsvps = []string{}
	}
	return proto.Event{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		RSVPs:       rsvps,
	}
}

func eventsFromCore(events []core.Event) []proto.Event {
	out := make([]proto.Event, 0, len(events))
	for _, e := range events {
		out = append(out, eventFromCore(e))
	}
	return out
}
