package meetchat

import (
	"sync"
	"time"

	"meetz/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// incomingFrame is what a connected participant sends over the socket. The
// server fills in everything else.
type incomingFrame struct {
	Content string `json:"content"`
}

// WebSocketClient is a participant's live chat connection.
type WebSocketClient struct {
	Hub  *Hub
	User *models.User
	Conn *websocket.Conn
	Send chan models.ChatMessage

	closeOnce sync.Once
}

func (c *WebSocketClient) UserID() uint { return c.User.ID }

func (c *WebSocketClient) MeetingID() uint {
	if c.User.MeetingID == nil {
		return 0
	}
	return *c.User.MeetingID
}

func (c *WebSocketClient) SendChannel() chan<- models.ChatMessage { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down. Safe to call more than once; the hub
// calls it on unregister and the pumps call it on transport errors.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		c.Conn.Close()
		close(c.Send)
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame incomingFrame
		if err := c.Conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Content == "" {
			continue
		}

		c.Hub.IncomingCh <- models.ChatMessage{
			ID:         uuid.New().String(),
			MeetingID:  c.MeetingID(),
			SenderID:   c.User.ID,
			SenderName: c.User.Name,
			Content:    frame.Content,
			Type:       "text",
			SentAt:     time.Now(),
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
