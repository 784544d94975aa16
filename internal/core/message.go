package core

import (
	"sync"
	"time"
)

// Message is the domain model for a chat message.
type Message struct {
	Sender    string
	Content   string
	Timestamp time.Time
}

// MessageLog is an append-only, in-memory sequence of chat messages.
type MessageLog struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
}

// NewMessageLog creates an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{now: time.Now}
}

// Append stores a message from sender. Empty content is rejected and
// nothing is stored.
func (l *MessageLog) Append(content, sender string) (Message, error) {
	if content == "" {
		return Message{}, ValidationError(MsgContentRequired)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := Message{
		Sender:    sender,
		Content:   content,
		Timestamp: l.now(),
	}
	l.messages = append(l.messages, msg)
	return msg, nil
}

// History returns a copy of every message in append order.
func (l *MessageLog) History() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of stored messages.
func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
