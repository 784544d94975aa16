package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rotech/townhall/internal/core"
	"github.com/rotech/townhall/internal/proto"
)

func TestInboundToCommand(t *testing.T) {
	tests := []struct {
		name    string
		inbound proto.Inbound
		want    core.Command
		errCode string
	}{
		{
			name:    "send message",
			inbound: proto.Inbound{Type: "send_message", Data: json.RawMessage(`{"content":"hi"}`)},
			want:    core.Command{Kind: core.CommandSendMessage, Content: "hi"},
		},
		{
			name:    "send message without data",
			inbound: proto.Inbound{Type: "send_message"},
			want:    core.Command{Kind: core.CommandSendMessage},
		},
		{
			name:    "get messages ignores null data",
			inbound: proto.Inbound{Type: "get_messages", Data: json.RawMessage(`null`)},
			want:    core.Command{Kind: core.CommandGetMessages},
		},
		{
			name: "create event",
			inbound: proto.Inbound{Type: "create_event", Data: json.RawMessage(
				`{"title":"t","date":"d","time":"h","location":"l","description":"x"}`)},
			want: core.Command{Kind: core.CommandCreateEvent, Event: core.EventDraft{
				Title: "t", Date: "d", Time: "h", Location: "l", Description: "x",
			}},
		},
		{
			name:    "rsvp",
			inbound: proto.Inbound{Type: "rsvp_event", Data: json.RawMessage(`{"eventId":3}`)},
			want:    core.Command{Kind: core.CommandRSVPEvent, EventID: 3},
		},
		{
			name:    "rsvp without id maps to zero",
			inbound: proto.Inbound{Type: "rsvp_event", Data: json.RawMessage(`{}`)},
			want:    core.Command{Kind: core.CommandRSVPEvent},
		},
		{
			name:    "rsvp with string id",
			inbound: proto.Inbound{Type: "rsvp_event", Data: json.RawMessage(`{"eventId":"3"}`)},
			errCode: core.ErrCodeBadRequest,
		},
		{
			name:    "unknown type",
			inbound: proto.Inbound{Type: "teleport"},
			errCode: core.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, cerr := inboundToCommand(tt.inbound)
			if tt.errCode != "" {
				require.NotNil(t, cerr)
				require.Equal(t, tt.errCode, cerr.Code)
				require.Nil(t, cmd)
				return
			}
			require.Nil(t, cerr)
			require.Equal(t, tt.want, *cmd)
		})
	}
}

func TestOutboundFromNotification(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)

	out := outboundFromNotification(&core.Notification{
		Kind:    core.NotifyNewMessage,
		Message: &core.Message{Sender: "User-1", Content: "hi", Timestamp: ts},
	})
	require.Equal(t, proto.OutboundTypeEvent, out.Type)
	require.Equal(t, "new_message", out.Event)
	require.Equal(t, proto.Message{Sender: "User-1", Content: "hi", Timestamp: "2026-03-04 05:06:07"}, out.Data)

	out = outboundFromNotification(&core.Notification{Kind: core.NotifyMessageHistory})
	require.Equal(t, []proto.Message{}, out.Data)

	out = outboundFromNotification(&core.Notification{
		Kind:  core.NotifyEventUpdated,
		Event: &core.Event{ID: 2, Title: "t"},
	})
	require.Equal(t, "event_updated", out.Event)
	require.Equal(t, []string{}, out.Data.(proto.Event).RSVPs)

	client := core.NewClient("sock-1", "1.2.3.4", 1)
	out = outboundFromNotification(&core.Notification{
		Kind: core.NotifyUserConnected,
		Session: &core.Session{
			SessionID: "s1", UserID: "u1", Name: "User-u1",
			ConnectedAt: ts, RemoteAddr: "1.2.3.4", Client: client,
		},
	})
	require.Equal(t, proto.UserEvent{User: proto.User{
		ID: "u1", SessionID: "s1", Name: "User-u1",
		ConnectedAt: "2026-03-04 05:06:07", IP: "1.2.3.4", SocketID: "sock-1",
	}}, out.Data)

	out = outboundFromNotification(&core.Notification{
		Kind:  core.NotifyError,
		Error: core.ValidationError("title is required"),
	})
	require.Equal(t, proto.OutboundTypeError, out.Type)
	require.Equal(t, &proto.Error{Code: core.ErrCodeValidation, Message: "title is required"}, out.Error)

	out = outboundFromNotification(&core.Notification{Kind: core.NotifyError})
	require.Equal(t, core.InternalErrorMessage, out.Error.Message)
}
