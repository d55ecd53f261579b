package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface of the service. Reports are the only
// rows this subsystem writes; users, managers and meetings are read-only
// directory lookups maintained elsewhere.
type Storage interface {
	SaveReport(ctx context.Context, report *models.Report) error
	DeleteReportByPair(ctx context.Context, starID, fanID uint) error
	FindReportByPair(ctx context.Context, starID, fanID uint) (*models.Report, error)
	FindReportByID(ctx context.Context, reportID uint) (*models.Report, error)
	FindReportsByMeeting(ctx context.Context, meetingID uint) ([]models.Report, error)
	ResolveReport(ctx context.Context, reportID uint, note string) error

	FindUserByID(ctx context.Context, userID uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindManagerByEmail(ctx context.Context, email string) (*models.Manager, error)
	FindMeetingByID(ctx context.Context, meetingID uint) (*models.Meeting, error)
	CountFansInMeeting(ctx context.Context, meetingID uint) (int64, error)

	SaveBlackList(ctx context.Context, entry *models.BlackList) error
	ListBlackListByManager(ctx context.Context, managerID uint) ([]models.BlackList, error)

	SaveAuthCode(ctx context.Context, code, email string, ttl time.Duration) error
	GetEmailByAuthCode(ctx context.Context, code string) (string, error)
	DeleteAuthCode(ctx context.Context, code string) error

	PublishChat(ctx context.Context, meetingID uint, msg models.ChatMessage) error
	SubscribeChat(ctx context.Context, meetingID uint) *redis.PubSub
}

// Service implements Storage on PostgreSQL (gorm) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

// SaveReport inserts the report. The unique index on (star_id, fan_id) makes
// the insert the atomic duplicate check: a concurrent second filing is
// rejected by the database, never stored transiently. Requires the gorm
// connection to be opened with TranslateError so the constraint violation
// arrives as gorm.ErrDuplicatedKey.
func (s *Service) SaveReport(ctx context.Context, report *models.Report) error {
	err := s.DB.WithContext(ctx).Create(report).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("report for star %d fan %d: %w", report.StarID, report.FanID, apperr.ErrDuplicate)
	}
	return err
}

// DeleteReportByPair removes the report filed by starID against fanID.
func (s *Service) DeleteReportByPair(ctx context.Context, starID, fanID uint) error {
	res := s.DB.WithContext(ctx).
		Where("star_id = ? AND fan_id = ?", starID, fanID).
		Delete(&models.Report{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("report for star %d fan %d: %w", starID, fanID, apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) FindReportByPair(ctx context.Context, starID, fanID uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.WithContext(ctx).
		Where("star_id = ? AND fan_id = ?", starID, fanID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("report for star %d fan %d: %w", starID, fanID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) FindReportByID(ctx context.Context, reportID uint) (*models.Report, error) {
	var report models.Report
	err := s.DB.WithContext(ctx).First(&report, reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("report %d: %w", reportID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// FindReportsByMeeting returns the meeting's reports ordered by id. An empty
// slice is a valid result, not an error.
func (s *Service) FindReportsByMeeting(ctx context.Context, meetingID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("id asc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolveReport marks the report resolved with a note. Only the admin CLI
// calls this; the service surface has no resolution workflow.
func (s *Service) ResolveReport(ctx context.Context, reportID uint, note string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"resolved":        true,
			"resolution_note": note,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("report %d: %w", reportID, apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) FindUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) FindManagerByEmail(ctx context.Context, email string) (*models.Manager, error) {
	var manager models.Manager
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&manager).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("manager %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func (s *Service) FindMeetingByID(ctx context.Context, meetingID uint) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.DB.WithContext(ctx).First(&meeting, meetingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("meeting %d: %w", meetingID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// CountFansInMeeting counts participants with the fan role.
func (s *Service) CountFansInMeeting(ctx context.Context, meetingID uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("meeting_id = ? AND role = ?", meetingID, models.RoleFan).
		Count(&count).Error
	return count, err
}

func (s *Service) SaveBlackList(ctx context.Context, entry *models.BlackList) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

func (s *Service) ListBlackListByManager(ctx context.Context, managerID uint) ([]models.BlackList, error) {
	var entries []models.BlackList
	err := s.DB.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
