package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rotech/townhall/internal/config"
	"github.com/rotech/townhall/internal/core"
	"github.com/rotech/townhall/internal/proto"
)

type rawOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// startTestServer runs the full router over a fresh hub.
func startTestServer(t *testing.T, mutate ...func(*config.Config)) (*httptest.Server, *core.Hub) {
	t.Helper()

	disabledLogger := zerolog.New(nil)
	hub := core.NewHub(nil, nil, nil, &disabledLogger)

	cfg := config.Default()
	cfg.Addr = ":0"
	for _, m := range mutate {
		m(&cfg)
	}

	server := NewServer(hub, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, hub
}

func dialWS(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	if query != "" {
		wsURL += "?" + query
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	inbound := proto.Inbound{Type: typ}
	if data != nil {
		payload, err := json.Marshal(data)
		require.NoError(t, err)
		inbound.Data = payload
	}
	require.NoError(t, wsjson.Write(ctx, conn, inbound))
}

func readOutbound(t *testing.T, conn *websocket.Conn) rawOutbound {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var out rawOutbound
	require.NoError(t, wsjson.Read(ctx, conn, &out))
	return out
}

// readUntil skips frames until one with the given event name arrives.
func readUntil(t *testing.T, conn *websocket.Conn, event string) rawOutbound {
	t.Helper()

	for range 20 {
		out := readOutbound(t, conn)
		if out.Event == event {
			return out
		}
	}
	t.Fatalf("event %q not received", event)
	return rawOutbound{}
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// waitForCount blocks until the registry reaches n sessions.
func waitForCount(t *testing.T, hub *core.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.Registry().Count() == n
	}, 2*time.Second, 10*time.Millisecond)
}
