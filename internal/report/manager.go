package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/identity"
	"meetz/backend/internal/models"
	"meetz/backend/internal/transcribe"
)

// MeetingSummary is the slice of a meeting shown alongside its reports.
type MeetingSummary struct {
	MeetingID uint      `json:"meeting_id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// ListView is the manager's report list for one meeting.
type ListView struct {
	Meeting          MeetingSummary  `json:"meeting"`
	ParticipantCount int64           `json:"participant_count"`
	Reports          []models.Report `json:"reports"`
}

// DetailView is one report plus the transcription of its audio evidence.
type DetailView struct {
	Report        models.Report     `json:"report"`
	Transcription transcribe.Result `json:"transcription"`
}

// GetReportList returns the reports of a meeting the acting manager owns.
// A missing meeting surfaces as NotFound before any ownership check.
func (s *Service) GetReportList(ctx context.Context, p identity.Principal, meetingID uint) (*ListView, error) {
	manager, err := s.Identity.CurrentManager(ctx, p)
	if err != nil {
		return nil, err
	}

	sctx, cancel := s.boundedCtx(ctx, s.StorageTimeout)
	defer cancel()

	meeting, err := s.Storage.FindMeetingByID(sctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := requireMeetingOwner(manager, meeting); err != nil {
		return nil, err
	}

	count, err := s.Storage.CountFansInMeeting(sctx, meetingID)
	if err != nil {
		return nil, err
	}
	reports, err := s.Storage.FindReportsByMeeting(sctx, meetingID)
	if err != nil {
		return nil, err
	}

	return &ListView{
		Meeting: MeetingSummary{
			MeetingID: meeting.ID,
			Name:      meeting.Name,
			StartedAt: meeting.StartedAt,
		},
		ParticipantCount: count,
		Reports:          reports,
	}, nil
}

// GetReportDetail returns one report with its evidence transcribed. The
// evidence stream is only opened after the ownership check passed, and is
// closed on every path out of the transcription call.
func (s *Service) GetReportDetail(ctx context.Context, p identity.Principal, meetingID, reportID uint) (*DetailView, error) {
	manager, err := s.Identity.CurrentManager(ctx, p)
	if err != nil {
		return nil, err
	}

	sctx, cancel := s.boundedCtx(ctx, s.StorageTimeout)
	defer cancel()

	meeting, err := s.Storage.FindMeetingByID(sctx, meetingID)
	if err != nil {
		return nil, err
	}
	report, err := s.Storage.FindReportByID(sctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := requireMeetingOwner(manager, meeting); err != nil {
		return nil, err
	}
	if report.MeetingID != meetingID {
		return nil, fmt.Errorf("report %d does not belong to meeting %d: %w", reportID, meetingID, apperr.ErrBadRequest)
	}

	stream, err := s.Evidence.Open(sctx, report)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	tctx, tcancel := s.boundedCtx(ctx, s.TranscribeTimeout)
	defer tcancel()

	result, err := s.Engine.Transcribe(tctx, stream)
	if err != nil {
		slog.Warn("transcription failed", "report_id", report.ID, "error", err)
		return nil, err
	}

	return &DetailView{Report: *report, Transcription: *result}, nil
}

// ListBlackList returns the acting manager's blacklist projections. The
// blacklist is a sibling data set with the same ownership pattern as
// reports; no scoring or ban logic lives here.
func (s *Service) ListBlackList(ctx context.Context, p identity.Principal) ([]models.BlackListInfo, error) {
	manager, err := s.Identity.CurrentManager(ctx, p)
	if err != nil {
		return nil, err
	}

	sctx, cancel := s.boundedCtx(ctx, s.StorageTimeout)
	defer cancel()

	entries, err := s.Storage.ListBlackListByManager(sctx, manager.ID)
	if err != nil {
		return nil, err
	}
	infos := make([]models.BlackListInfo, len(entries))
	for i, e := range entries {
		infos[i] = e.Info()
	}
	return infos, nil
}
