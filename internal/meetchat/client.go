package meetchat

import "meetz/backend/internal/models"

// Client is one attached chat connection. The hub only ever talks to this
// interface, so tests can attach fakes without a real socket.
type Client interface {
	// UserID returns the participant this connection belongs to.
	UserID() uint
	// MeetingID returns the meeting whose chat the client is attached to.
	MeetingID() uint

	// SendChannel is where the hub delivers messages for this client.
	SendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the connection down and releases its channels.
	Close()
}
