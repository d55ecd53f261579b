// Package mail handles manager email verification: a short-lived numeric
// code is mailed out and held in Redis until it is checked or expires.
package mail

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/smtp"
	"time"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/storage"
)

const codeTTL = 10 * time.Minute

// Sender delivers a single mail. Tests substitute a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	From string
	Pass string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.From, to, subject, body))
	auth := smtp.PlainAuth("", s.From, s.Pass, s.Host)
	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, msg)
}

// Service implements the verification flow.
type Service struct {
	Storage storage.Storage
	Sender  Sender
}

func NewService(s storage.Storage, sender Sender) *Service {
	return &Service{Storage: s, Sender: sender}
}

// EmailRegistered reports whether a manager already uses the email.
func (s *Service) EmailRegistered(ctx context.Context, email string) (bool, error) {
	_, err := s.Storage.FindManagerByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SendVerification issues a six-digit code for the email, stores it with a
// TTL and mails it out.
func (s *Service) SendVerification(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Storage.SaveAuthCode(ctx, code, email, codeTTL); err != nil {
		return err
	}
	if err := s.Sender.Send(email, "Meetz email verification", "Your verification code: "+code); err != nil {
		return err
	}
	slog.Info("verification code sent", "email", email)
	return nil
}

// Verify checks a code against the email it was issued for and consumes it
// on success. A wrong or expired code is a BadRequest, matching the rest of
// the API's taxonomy.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	stored, err := s.Storage.GetEmailByAuthCode(ctx, code)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("verification code mismatch: %w", apperr.ErrBadRequest)
	}
	if err != nil {
		return err
	}
	if stored != email {
		return fmt.Errorf("verification code mismatch: %w", apperr.ErrBadRequest)
	}
	return s.Storage.DeleteAuthCode(ctx, code)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
