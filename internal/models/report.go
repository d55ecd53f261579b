package models

import "time"

// Report is a complaint a star files against a fan. The composite unique
// index on (star_id, fan_id) is what enforces the one-report-per-pair
// invariant; the insert either lands or is rejected by the database, there
// is no separate existence check racing with it.
//
// MeetingID is bound at creation time to the meeting the fan belonged to
// then, and never rebound afterwards.
type Report struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	MeetingID uint `gorm:"index;not null" json:"meeting_id"`
	StarID    uint `gorm:"not null;uniqueIndex:idx_report_pair" json:"star_id"`
	FanID     uint `gorm:"not null;uniqueIndex:idx_report_pair" json:"fan_id"`

	Active         bool    `gorm:"not null" json:"active"`
	Resolved       bool    `gorm:"not null" json:"resolved"`
	ResolutionNote *string `gorm:"type:text" json:"resolution_note,omitempty"`

	// FilePath is the display URL of the recorded audio as older clients
	// stored it. ObjectKey is the raw storage key, written once at creation.
	// New rows always carry ObjectKey; FilePath remains for legacy rows.
	FilePath  string `gorm:"type:text" json:"file_path"`
	ObjectKey string `gorm:"type:text" json:"object_key"`

	CreatedAt time.Time `json:"created_at"`
}
