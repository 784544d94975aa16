package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rotech/townhall/internal/proto"
)

type frame struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

const help = `Commands:
  /history                                      replay chat history
  /events                                       list events
  /event title|date|time|location|description   create an event
  /rsvp <id>                                    toggle your RSVP
Anything else is sent as a chat message.`

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	session := flag.String("session", "", "session id (reuse to reconnect as the same session)")
	user := flag.String("user", "", "user id (display name is derived from it)")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	target, err := url.Parse(*addr)
	if err != nil {
		return fmt.Errorf("parse addr: %w", err)
	}
	q := target.Query()
	if *session != "" {
		q.Set("session_id", *session)
	}
	if *user != "" {
		q.Set("user_id", *user)
	}
	target.RawQuery = q.Encode()

	conn, _, err := websocket.Dial(ctx, target.String(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s\n%s\n", *addr, help)

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var out frame
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if out.Error != nil {
			fmt.Printf("! %s\n", out.Error.Message)
			continue
		}
		printEvent(out)
	}
}

func printEvent(out frame) {
	switch out.Event {
	case "user_count":
		var c proto.UserCount
		if json.Unmarshal(out.Data, &c) == nil {
			fmt.Printf("* %d online\n", c.Count)
		}
	case "user_connected", "user_disconnected":
		var u proto.UserEvent
		if json.Unmarshal(out.Data, &u) == nil {
			verb := "joined"
			if out.Event == "user_disconnected" {
				verb = "left"
			}
			fmt.Printf("* %s %s\n", u.User.Name, verb)
		}
	case "new_message":
		var m proto.Message
		if json.Unmarshal(out.Data, &m) == nil {
			fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.Sender, m.Content)
		}
	case "message_history":
		var msgs []proto.Message
		if json.Unmarshal(out.Data, &msgs) == nil {
			for _, m := range msgs {
				fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.Sender, m.Content)
			}
		}
	case "new_event", "event_updated":
		var e proto.Event
		if json.Unmarshal(out.Data, &e) == nil {
			printEventLine(e)
		}
	case "event_history":
		var events []proto.Event
		if json.Unmarshal(out.Data, &events) == nil {
			for _, e := range events {
				printEventLine(e)
			}
		}
	default:
		fmt.Printf("event=%s data=%s\n", out.Event, out.Data)
	}
}

func printEventLine(e proto.Event) {
	fmt.Printf("#%d %s on %s %s at %s (by %s) going: %s\n",
		e.ID, e.Title, e.Date, e.Time, e.Location, e.CreatedBy, strings.Join(e.RSVPs, ", "))
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			inbound, err := parseLine(text)
			if err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			if err := wsjson.Write(ctx, conn, inbound); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func parseLine(text string) (proto.Inbound, error) {
	cmd, arg, _ := strings.Cut(text, " ")
	switch cmd {
	case "/history":
		return proto.Inbound{Type: proto.InboundTypeGetMessages}, nil
	case "/events":
		return proto.Inbound{Type: proto.InboundTypeGetEvents}, nil
	case "/rsvp":
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return proto.Inbound{}, errors.New("usage: /rsvp <id>")
		}
		return inbound(proto.InboundTypeRSVPEvent, proto.RSVPEventData{EventID: id})
	case "/event":
		parts := strings.Split(arg, "|")
		for len(parts) < 5 {
			parts = append(parts, "")
		}
		return inbound(proto.InboundTypeCreateEvent, proto.CreateEventData{
			Title:       strings.TrimSpace(parts[0]),
			Date:        strings.TrimSpace(parts[1]),
			Time:        strings.TrimSpace(parts[2]),
			Location:    strings.TrimSpace(parts[3]),
			Description: strings.TrimSpace(parts[4]),
		})
	default:
		return inbound(proto.InboundTypeSendMessage, proto.SendMessageData{Content: text})
	}
}

func inbound(typ string, data any) (proto.Inbound, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return proto.Inbound{}, fmt.Errorf("marshal %s: %w", typ, err)
	}
	return proto.Inbound{Type: typ, Data: payload}, nil
}
