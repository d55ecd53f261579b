// Package report composes the report lifecycle: stars file and cancel
// reports against fans, managers review them per meeting, and the detail
// view pulls the audio evidence out of object storage and runs it through
// the transcription engine.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/evidence"
	"meetz/backend/internal/identity"
	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"
	"meetz/backend/internal/transcribe"
)

// EvidenceOpener opens the audio stream behind a report.
type EvidenceOpener interface {
	Open(ctx context.Context, report *models.Report) (io.ReadCloser, error)
}

// Service is the report aggregator. Storage is the single writer of record
// for report rows; everything else here is reads and composition.
type Service struct {
	Storage  storage.Storage
	Identity *identity.Resolver
	Evidence EvidenceOpener
	Engine   transcribe.Engine

	// Bounds for the two blocking backends. Zero means no extra bound
	// beyond the caller's context.
	StorageTimeout    time.Duration
	TranscribeTimeout time.Duration
}

// NewService creates the report service.
func NewService(s storage.Storage, r *identity.Resolver, ev EvidenceOpener, eng transcribe.Engine, storageTimeout, transcribeTimeout time.Duration) *Service {
	return &Service{
		Storage:           s,
		Identity:          r,
		Evidence:          ev,
		Engine:            eng,
		StorageTimeout:    storageTimeout,
		TranscribeTimeout: transcribeTimeout,
	}
}

func (s *Service) boundedCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// FileReport files a report by the acting star against the given fan. The
// acting identity is the authorization: a star can only file on their own
// behalf. The report binds to the fan's current meeting and records the
// evidence storage key once, at write time.
func (s *Service) FileReport(ctx context.Context, p identity.Principal, fanID uint) (*models.Report, error) {
	star, err := s.Identity.CurrentUser(ctx, p)
	if err != nil {
		return nil, err
	}
	if star.Role != models.RoleStar {
		return nil, fmt.Errorf("user %d is not a star: %w", star.ID, apperr.ErrForbidden)
	}

	sctx, cancel := s.boundedCtx(ctx, s.StorageTimeout)
	defer cancel()

	fan, err := s.Storage.FindUserByID(sctx, fanID)
	if err != nil {
		return nil, err
	}
	if fan.Role != models.RoleFan {
		return nil, fmt.Errorf("user %d has role %s: %w", fan.ID, fan.Role, apperr.ErrInvalidRole)
	}
	if fan.MeetingID == nil {
		return nil, fmt.Errorf("fan %d is not in a meeting: %w", fan.ID, apperr.ErrBadRequest)
	}

	report := &models.Report{
		MeetingID: *fan.MeetingID,
		StarID:    star.ID,
		FanID:     fan.ID,
		Active:    true,
		Resolved:  false,
		ObjectKey: evidence.KeyForFan(fan.ID),
	}
	if err := s.Storage.SaveReport(sctx, report); err != nil {
		return nil, err
	}

	slog.Info("report filed",
		"report_id", report.ID,
		"meeting_id", report.MeetingID,
		"star_id", star.ID,
		"fan_id", fan.ID,
	)
	return report, nil
}

// CancelReport deletes the report the acting star filed against the fan.
func (s *Service) CancelReport(ctx context.Context, p identity.Principal, fanID uint) error {
	star, err := s.Identity.CurrentUser(ctx, p)
	if err != nil {
		return err
	}
	if star.Role != models.RoleStar {
		return fmt.Errorf("user %d is not a star: %w", star.ID, apperr.ErrForbidden)
	}

	sctx, cancel := s.boundedCtx(ctx, s.StorageTimeout)
	defer cancel()

	if _, err := s.Storage.FindUserByID(sctx, fanID); err != nil {
		return err
	}
	if err := s.Storage.DeleteReportByPair(sctx, star.ID, fanID); err != nil {
		return err
	}

	slog.Info("report cancelled", "star_id", star.ID, "fan_id", fanID)
	return nil
}
