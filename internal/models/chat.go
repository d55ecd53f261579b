package models

import "time"

// ChatMessage is a single meeting chat message relayed between connected
// participants. Messages are fanned out through Redis pub/sub and are not
// persisted.
type ChatMessage struct {
	ID         string    `json:"id"`
	MeetingID  uint      `json:"meeting_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Type       string    `json:"type"` // "text", "system"
	SentAt     time.Time `json:"sent_at"`
}
