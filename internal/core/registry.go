package core

import (
	"sort"
	"sync"
	"time"

	"github.com/rotech/townhall/internal/utils"
)

// AnonymousName is the display name for operations from unregistered clients.
const AnonymousName = "Anonymous"

// ConnectRequest carries the identity a client presents on connect.
// Empty IDs are generated by the registry.
type ConnectRequest struct {
	SessionID  string
	UserID     string
	RemoteAddr string
}

// Session is one logical client identity for the lifetime of a connection.
type Session struct {
	SessionID   string
	UserID      string
	Name        string
	ConnectedAt time.Time
	RemoteAddr  string
	Client      *Client
}

// DisplayName derives the public name of a user.
func DisplayName(userID string) string {
	return "User-" + utils.ShortID(userID, 8)
}

// Registry maps session IDs to live sessions, with a secondary index
// from transport handle to session ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byClient map[*Client]string
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		byClient: make(map[*Client]string),
		now:      time.Now,
	}
}

// Register stores a session for client and returns it with the session
// count right after the change. An existing entry with the same session ID
// is replaced and its transport handle forgotten.
func (r *Registry) Register(req ConnectRequest, client *Client) (*Session, int) {
	if req.SessionID == "" {
		req.SessionID = utils.NewID()
	}
	if req.UserID == "" {
		req.UserID = utils.NewID()
	}

	session := &Session{
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		Name:        DisplayName(req.UserID),
		ConnectedAt: r.now(),
		RemoteAddr:  req.RemoteAddr,
		Client:      client,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.sessions[req.SessionID]; ok && prev.Client != client {
		delete(r.byClient, prev.Client)
	}
	// The same handle registering under a new session ID leaves its old entry behind otherwise.
	if oldID, ok := r.byClient[client]; ok && oldID != req.SessionID {
		delete(r.sessions, oldID)
	}
	r.sessions[req.SessionID] = session
	r.byClient[client] = req.SessionID

	cp := *session
	return &cp, len(r.sessions)
}

// Unregister removes the session owned by client and returns it with the
// remaining count. It reports false when the handle is unknown, which is an
// expected outcome.
func (r *Registry) Unregister(client *Client) (*Session, int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byClient[client]
	if !ok {
		return nil, len(r.sessions), false
	}
	delete(r.byClient, client)

	session, ok := r.sessions[id]
	if !ok {
		return nil, len(r.sessions), false
	}
	delete(r.sessions, id)

	cp := *session
	return &cp, len(r.sessions), true
}

// FindByClient resolves the session behind a transport handle.
func (r *Registry) FindByClient(client *Client) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byClient[client]
	if !ok {
		return nil, false
	}
	session, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *session
	return &cp, true
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Clients returns a snapshot of every registered transport handle.
func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*Client, 0, len(r.byClient))
	for c := range r.byClient {
		clients = append(clients, c)
	}
	return clients
}

// Sessions returns a snapshot of every registered session ordered by connect time.
func (r *Registry) Sessions() []Session {
	r.mu.RLock()
	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ConnectedAt.Before(out[j].ConnectedAt)
	})
	return out
}
