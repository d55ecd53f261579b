package models

import "time"

// Role tells star and fan participants apart. It is a closed set; every
// branch that depends on it handles exactly these two values.
type Role string

const (
	RoleStar Role = "STAR"
	RoleFan  Role = "FAN"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleStar || r == RoleFan
}

// User is a meeting participant, either a star or a fan. A user belongs to
// at most one active meeting; the role does not change for the lifetime of
// the session.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:text;not null" json:"name"`
	Email     string `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"type:text" json:"phone"`
	Role      Role   `gorm:"type:text;not null" json:"role"`
	MeetingID *uint  `gorm:"index" json:"meeting_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
