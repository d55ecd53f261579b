package handler

import (
	"net/http"

	"meetz/backend/internal/meetchat"
	"meetz/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket attaches the authenticated participant to their meeting's
// chat. The principal must resolve to a user who is currently in a meeting.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user, err := h.Identity.CurrentUser(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if user.MeetingID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &meetchat.WebSocketClient{
		Hub:  h.Hub,
		User: user,
		Conn: conn,
		Send: make(chan models.ChatMessage, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
