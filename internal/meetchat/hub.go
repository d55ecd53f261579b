// Package meetchat relays chat messages between the participants of a
// meeting. Messages travel through Redis pub/sub so any server instance can
// hold any subset of a meeting's connections; nothing is persisted.
package meetchat

import (
	"context"
	"encoding/json"
	"log/slog"

	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Hub routes chat messages. All state is owned by the Run goroutine;
// registration, unregistration and message flow go through channels.
type Hub struct {
	Storage storage.Storage

	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan models.ChatMessage

	// clients per meeting, touched only by Run.
	clients map[uint]map[Client]struct{}
	// one redis subscription per meeting with attached clients.
	subs     map[uint]*redis.PubSub
	fanoutCh chan models.ChatMessage
}

// NewHub creates a chat hub backed by the given storage's pub/sub.
func NewHub(s storage.Storage) *Hub {
	return &Hub{
		Storage:      s,
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan models.ChatMessage, 64),
		clients:      make(map[uint]map[Client]struct{}),
		subs:         make(map[uint]*redis.PubSub),
		fanoutCh:     make(chan models.ChatMessage, 64),
	}
}

// Run is the hub's dispatcher loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	slog.Info("meeting chat hub started")
	for {
		select {
		case <-ctx.Done():
			for meetingID := range h.subs {
				h.dropSubscription(meetingID)
			}
			return

		case client := <-h.RegisterCh:
			h.register(ctx, client)

		case client := <-h.UnregisterCh:
			h.unregister(client)

		case msg := <-h.IncomingCh:
			// Publish instead of delivering directly so every instance,
			// including this one, receives the message the same way.
			if err := h.Storage.PublishChat(ctx, msg.MeetingID, msg); err != nil {
				slog.Error("chat publish failed", "meeting_id", msg.MeetingID, "error", err)
			}

		case msg := <-h.fanoutCh:
			h.deliver(msg)
		}
	}
}

func (h *Hub) register(ctx context.Context, client Client) {
	meetingID := client.MeetingID()
	if h.clients[meetingID] == nil {
		h.clients[meetingID] = make(map[Client]struct{})
	}
	h.clients[meetingID][client] = struct{}{}

	if _, ok := h.subs[meetingID]; !ok {
		sub := h.Storage.SubscribeChat(ctx, meetingID)
		h.subs[meetingID] = sub
		go h.listen(sub)
	}
	slog.Debug("chat client attached", "meeting_id", meetingID, "user_id", client.UserID())
}

func (h *Hub) unregister(client Client) {
	meetingID := client.MeetingID()
	set, ok := h.clients[meetingID]
	if !ok {
		return
	}
	if _, attached := set[client]; !attached {
		return
	}
	delete(set, client)
	client.Close()

	if len(set) == 0 {
		delete(h.clients, meetingID)
		h.dropSubscription(meetingID)
	}
}

func (h *Hub) dropSubscription(meetingID uint) {
	if sub, ok := h.subs[meetingID]; ok {
		sub.Close()
		delete(h.subs, meetingID)
	}
}

// listen pumps one meeting's redis channel into the hub. It exits when the
// subscription is closed.
func (h *Hub) listen(sub *redis.PubSub) {
	for msg := range sub.Channel() {
		var chatMsg models.ChatMessage
		if err := json.Unmarshal([]byte(msg.Payload), &chatMsg); err != nil {
			slog.Error("bad chat payload", "error", err)
			continue
		}
		h.fanoutCh <- chatMsg
	}
}

func (h *Hub) deliver(msg models.ChatMessage) {
	for client := range h.clients[msg.MeetingID] {
		select {
		case client.SendChannel() <- msg:
		default:
			// Slow consumer; detach it rather than stalling the meeting.
			h.unregister(client)
		}
	}
}
