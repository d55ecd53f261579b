package meetchat

import (
	"context"
	"testing"
	"time"

	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	userID    uint
	meetingID uint
	send      chan models.ChatMessage
	closed    bool
}

func newFakeClient(userID, meetingID uint, buffer int) *fakeClient {
	return &fakeClient{userID: userID, meetingID: meetingID, send: make(chan models.ChatMessage, buffer)}
}

func (c *fakeClient) UserID() uint                           { return c.userID }
func (c *fakeClient) MeetingID() uint                        { return c.meetingID }
func (c *fakeClient) SendChannel() chan<- models.ChatMessage { return c.send }
func (c *fakeClient) Run()                                   {}
func (c *fakeClient) Close()                                 { c.closed = true }

func attach(h *Hub, clients ...Client) {
	for _, c := range clients {
		meetingID := c.MeetingID()
		if h.clients[meetingID] == nil {
			h.clients[meetingID] = make(map[Client]struct{})
		}
		h.clients[meetingID][c] = struct{}{}
	}
}

// TestDeliver_FanOut verifies a message reaches every client of its meeting
// and nobody else.
func TestDeliver_FanOut(t *testing.T) {
	h := NewHub(nil)
	a := newFakeClient(1, 42, 1)
	b := newFakeClient(2, 42, 1)
	other := newFakeClient(3, 43, 1)
	attach(h, a, b, other)

	msg := models.ChatMessage{MeetingID: 42, SenderID: 1, Content: "hello"}
	h.deliver(msg)

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 1)
	assert.Empty(t, other.send, "clients of other meetings must not receive the message")
}

// TestDeliver_SlowConsumer verifies a client that cannot keep up is detached
// instead of stalling the whole meeting.
func TestDeliver_SlowConsumer(t *testing.T) {
	h := NewHub(nil)
	stuck := newFakeClient(1, 42, 0)
	healthy := newFakeClient(2, 42, 1)
	attach(h, stuck, healthy)

	h.deliver(models.ChatMessage{MeetingID: 42, Content: "hello"})

	assert.True(t, stuck.closed, "the slow client must be closed")
	assert.NotContains(t, h.clients[42], Client(stuck))
	assert.Len(t, healthy.send, 1, "the healthy client still gets the message")
}

// TestUnregister_LastClientDropsMeeting verifies the meeting entry disappears
// once its last client leaves.
func TestUnregister_LastClientDropsMeeting(t *testing.T) {
	h := NewHub(nil)
	a := newFakeClient(1, 42, 1)
	b := newFakeClient(2, 42, 1)
	attach(h, a, b)

	h.unregister(a)
	assert.True(t, a.closed)
	assert.Contains(t, h.clients, uint(42), "the meeting stays while a client remains")

	h.unregister(b)
	assert.NotContains(t, h.clients, uint(42))
}

func TestUnregister_UnknownClientIsNoop(t *testing.T) {
	h := NewHub(nil)
	stranger := newFakeClient(1, 42, 1)

	h.unregister(stranger)

	assert.False(t, stranger.closed)
}

type publishRecorder struct {
	storage.Storage

	published chan models.ChatMessage
}

func (p *publishRecorder) PublishChat(ctx context.Context, meetingID uint, msg models.ChatMessage) error {
	p.published <- msg
	return nil
}

// TestRun_PublishesIncoming verifies incoming messages go through the shared
// channel rather than straight to local clients.
func TestRun_PublishesIncoming(t *testing.T) {
	rec := &publishRecorder{published: make(chan models.ChatMessage, 1)}
	h := NewHub(rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	msg := models.ChatMessage{MeetingID: 42, SenderID: 1, Content: "hello"}
	h.IncomingCh <- msg

	select {
	case got := <-rec.published:
		assert.Equal(t, msg, got)
	case <-time.After(time.Second):
		t.Fatal("message was never published")
	}
}
