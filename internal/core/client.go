package core

// DefaultSendBuffer is the mailbox size used when NewClient gets a non-positive buffer.
const DefaultSendBuffer = 64

// Client is the transport handle of one live connection.
// The core only ever sends to Notifications; it never closes the channel.
type Client struct {
	ID            string
	RemoteAddr    string
	Notifications chan *Notification
}

// NewClient constructs a client with an initialized mailbox.
func NewClient(id, remoteAddr string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Client{
		ID:            id,
		RemoteAddr:    remoteAddr,
		Notifications: make(chan *Notification, buffer),
	}
}

// deliver performs a non-blocking send. It reports false when the mailbox is full.
func (c *Client) deliver(n *Notification) bool {
	select {
	case c.Notifications <- n:
		return true
	default:
		return false
	}
}
