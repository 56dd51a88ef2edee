package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meetly/internal/usecase/errors"
	"github.com/johnquangdev/meetly/pkg/mailer"
)

const keyPrefix = "otp:"

// entry is what the store keeps per email. The expiry is kept alongside the
// code so an expired code can be told apart from a missing one.
type entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues and verifies email one-time passwords
type Service struct {
	store  cache.Store
	mailer mailer.Mailer
	expiry time.Duration
	length int
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a new OTP service
func NewService(store cache.Store, m mailer.Mailer, expiry time.Duration, length int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		mailer: m,
		expiry: expiry,
		length: length,
		now:    time.Now,
		logger: logger,
	}
}

// Send generates a code for email, replacing any previous one, and mails it
func (s *Service) Send(ctx context.Context, email string) error {
	email = normalize(email)

	code, err := generateCode(s.length)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	b, err := json.Marshal(entry{Code: code, ExpiresAt: s.now().Add(s.expiry)})
	if err != nil {
		return err
	}
	// Keep the key a little past expiry so Verify can report "expired"
	if err := s.store.Set(ctx, keyPrefix+email, string(b), s.expiry+time.Minute); err != nil {
		return fmt.Errorf("%w: store: %w", usecaseErrors.ErrOTPStoreFailed, err)
	}

	if err := s.mailer.SendOTP(ctx, email, code, s.expiry); err != nil {
		_ = s.store.Delete(ctx, keyPrefix+email)
		s.logger.Error("❌ Failed to send OTP email", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("%w: %v", usecaseErrors.ErrOTPSendFailed, err)
	}

	s.logger.Info("✅ OTP sent", zap.String("email", email))
	return nil
}

// Verify checks a code. Expired and successfully used codes are removed.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = normalize(email)
	key := keyPrefix + email

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: read: %w", usecaseErrors.ErrOTPStoreFailed, err)
	}
	if !ok {
		return usecaseErrors.ErrOTPNotFound
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		_ = s.store.Delete(ctx, key)
		return usecaseErrors.ErrOTPNotFound
	}

	if s.now().After(e.ExpiresAt) {
		_ = s.store.Delete(ctx, key)
		return usecaseErrors.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(e.Code), []byte(strings.TrimSpace(code))) != 1 {
		return usecaseErrors.ErrOTPInvalid
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: clear: %w", usecaseErrors.ErrOTPStoreFailed, err)
	}
	s.logger.Info("✅ OTP verified", zap.String("email", email))
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a zero-padded random decimal code of the given length
func generateCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
