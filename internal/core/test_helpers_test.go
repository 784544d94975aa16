package core

import (
	"testing"
	"time"
)

func mustNotification(t *testing.T, ch <-chan *Notification, kind NotificationKind) *Notification {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case n := <-ch:
			if n == nil {
				continue
			}
			if n.Kind == kind {
				return n
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected notification %v not received", kind)
	return nil
}

// nextNotification returns the next queued notification without skipping.
func nextNotification(t *testing.T, ch <-chan *Notification) *Notification {
	t.Helper()

	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
		return nil
	}
}

func drain(ch <-chan *Notification) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func newTestHub() *Hub {
	return NewHub(nil, nil, nil, nil)
}
