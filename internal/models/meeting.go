package models

import "time"

// Meeting is a fan meeting session. Exactly one manager owns a meeting for
// its whole lifetime; participants reference it through User.MeetingID.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	ManagerID uint      `gorm:"index;not null" json:"manager_id"`
	StartedAt time.Time `json:"started_at"`

	CreatedAt time.Time `json:"created_at"`
}

// Manager runs meetings. Managers never appear as participants.
type Manager struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"type:text;uniqueIndex;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}
