package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const authCodePrefix = "authcode:"

// SaveAuthCode stores a pending email verification code. The code is the key
// so a later check can recover which email it was issued for.
func (s *Service) SaveAuthCode(ctx context.Context, code, email string, ttl time.Duration) error {
	return s.Redis.Set(ctx, authCodePrefix+code, email, ttl).Err()
}

// GetEmailByAuthCode returns the email a verification code was issued for.
func (s *Service) GetEmailByAuthCode(ctx context.Context, code string) (string, error) {
	email, err := s.Redis.Get(ctx, authCodePrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("auth code: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *Service) DeleteAuthCode(ctx context.Context, code string) error {
	return s.Redis.Del(ctx, authCodePrefix+code).Err()
}

func chatChannel(meetingID uint) string {
	return fmt.Sprintf("meetchat:%d", meetingID)
}

// PublishChat fans a chat message out to every server instance holding
// connections for the meeting.
func (s *Service) PublishChat(ctx context.Context, meetingID uint, msg models.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, chatChannel(meetingID), payload).Err()
}

// SubscribeChat subscribes to the meeting's chat channel. The caller owns the
// returned subscription and must close it.
func (s *Service) SubscribeChat(ctx context.Context, meetingID uint) *redis.PubSub {
	return s.Redis.Subscribe(ctx, chatChannel(meetingID))
}
