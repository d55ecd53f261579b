package report_test

import (
	"context"
	"time"

	"meetz/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveReport(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockStorage) DeleteReportByPair(ctx context.Context, starID, fanID uint) error {
	args := m.Called(ctx, starID, fanID)
	return args.Error(0)
}

func (m *MockStorage) FindReportByPair(ctx context.Context, starID, fanID uint) (*models.Report, error) {
	args := m.Called(ctx, starID, fanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) FindReportByID(ctx context.Context, reportID uint) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) FindReportsByMeeting(ctx context.Context, meetingID uint) ([]models.Report, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) ResolveReport(ctx context.Context, reportID uint, note string) error {
	args := m.Called(ctx, reportID, note)
	return args.Error(0)
}

func (m *MockStorage) FindUserByID(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) FindManagerByEmail(ctx context.Context, email string) (*models.Manager, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manager), args.Error(1)
}

func (m *MockStorage) FindMeetingByID(ctx context.Context, meetingID uint) (*models.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockStorage) CountFansInMeeting(ctx context.Context, meetingID uint) (int64, error) {
	args := m.Called(ctx, meetingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SaveBlackList(ctx context.Context, entry *models.BlackList) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStorage) ListBlackListByManager(ctx context.Context, managerID uint) ([]models.BlackList, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlackList), args.Error(1)
}

func (m *MockStorage) SaveAuthCode(ctx context.Context, code, email string, ttl time.Duration) error {
	args := m.Called(ctx, code, email, ttl)
	return args.Error(0)
}

func (m *MockStorage) GetEmailByAuthCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteAuthCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockStorage) PublishChat(ctx context.Context, meetingID uint, msg models.ChatMessage) error {
	args := m.Called(ctx, meetingID, msg)
	return args.Error(0)
}

func (m *MockStorage) SubscribeChat(ctx context.Context, meetingID uint) *redis.PubSub {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.PubSub)
}
