package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rotech/townhall/internal/core"
	"github.com/rotech/townhall/internal/proto"
	"github.com/rotech/townhall/internal/utils"
)

const sessionCookie = "session_id"

// APIHandlers serves read-only snapshots of hub state over REST.
type APIHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub: hub,
		log: logger,
	}
}

// SessionResponse carries the session ID a client should connect with.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// Session returns the caller's session ID, minting one in a cookie if absent.
// GET /api/session
func (h *APIHandlers) Session(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		c.JSON(http.StatusOK, SessionResponse{SessionID: id})
		return
	}

	id := utils.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		sessionCookie,
		id,
		3600*24*7, // 7 days
		"/",
		"",
		false, // secure (set to true in production with HTTPS)
		true,  // httpOnly
	)

	h.log.Debug().Str("session_id", id).Msg("session issued")
	c.JSON(http.StatusOK, SessionResponse{SessionID: id})
}

// Presence returns the connected-user count and the users behind it.
// GET /api/presence
func (h *APIHandlers) Presence(c *gin.Context) {
	sessions := h.hub.Registry().Sessions()
	c.JSON(http.StatusOK, proto.Presence{
		Count: len(sessions),
		Users: usersFromSessions(sessions),
	})
}

// Messages returns the full message history.
// GET /api/messages
func (h *APIHandlers) Messages(c *gin.Context) {
	c.JSON(http.StatusOK, messagesFromCore(h.hub.Messages().History()))
}

// Events returns every event with its RSVPs.
// GET /api/events
func (h *APIHandlers) Events(c *gin.Context) {
	c.JSON(http.StatusOK, eventsFromCore(h.hub.Events().History()))
}
