package report

import (
	"fmt"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/models"
)

// requireMeetingOwner is the single authorization gate for manager-scoped
// reads. Transcription access goes through report detail and is therefore
// never reachable without passing this check.
func requireMeetingOwner(manager *models.Manager, meeting *models.Meeting) error {
	if meeting.ManagerID != manager.ID {
		return fmt.Errorf("manager %d does not own meeting %d: %w", manager.ID, meeting.ID, apperr.ErrForbidden)
	}
	return nil
}
