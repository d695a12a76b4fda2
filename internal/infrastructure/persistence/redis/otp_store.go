package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/culinamind/backend/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const otpKeyPrefix = "otp:"

// OTPStore holds password reset codes in Redis with automatic expiry.
type OTPStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewOTPStore creates a Redis-backed OTP store
func NewOTPStore(client *redis.Client, logger *zap.Logger) outbound.OTPStore {
	return &OTPStore{client: client, logger: logger}
}

// Put stores a code for an email; an existing code is overwritten and
// its expiry reset.
func (s *OTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err(); err != nil {
		s.logger.Error("otp store failed", zap.Error(err))
		return err
	}
	return nil
}

// Verify checks the code against the stored one. Missing or expired
// codes verify as false without error.
func (s *OTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1, nil
}

// Clear removes a stored code after successful use.
func (s *OTPStore) Clear(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKeyPrefix+email).Err()
}
