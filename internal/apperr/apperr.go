// Package apperr defines the error kinds shared across the report and
// moderation services. Handlers translate these into HTTP statuses; services
// wrap them with context using fmt.Errorf and %w so errors.Is keeps working
// across layers.
package apperr

import "errors"

var (
	// ErrNotFound means a referenced entity (user, manager, meeting, report,
	// stored audio object) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRole means the target user is not a fan where a fan is required.
	ErrInvalidRole = errors.New("target is not a fan")

	// ErrDuplicate means the one-report-per-(star, fan) constraint was violated.
	ErrDuplicate = errors.New("report already filed")

	// ErrForbidden means the acting manager does not own the meeting.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest means the input is semantically inconsistent, for example
	// a report that does not belong to the requested meeting.
	ErrBadRequest = errors.New("bad request")

	// ErrStorageUnavailable means the object storage backend failed at the
	// transport level. Retryable, unlike ErrNotFound.
	ErrStorageUnavailable = errors.New("evidence storage unavailable")

	// ErrTranscriptionFailed means the transcription engine rejected or failed
	// to process the audio stream. Retryable.
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// Retryable reports whether the caller may usefully retry the operation.
// Only backend availability errors qualify; everything else is terminal for
// the request.
func Retryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrTranscriptionFailed)
}
