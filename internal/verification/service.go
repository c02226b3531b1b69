// Package verification issues and confirms one-time phone verification codes.
// Codes live in Redis under a TTL, so unconfirmed codes expire on their own.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flite-pay/flite/internal/identity"
)

const codeKeyPrefix = "verify:phone:"

var (
	// ErrCodeMismatch indicates the submitted code does not match the issued one.
	ErrCodeMismatch = errors.New("verification: code mismatch")
	// ErrCodeExpired indicates no code is outstanding for the phone number.
	ErrCodeExpired = errors.New("verification: code expired or never issued")
)

// Service manages phone verification codes.
type Service struct {
	cache *redis.Client
	ids   identity.Repository
	ttl   time.Duration
}

// NewService builds the verification service.
func NewService(cache *redis.Client, ids identity.Repository, ttl time.Duration) *Service {
	return &Service{cache: cache, ids: ids, ttl: ttl}
}

// RequestCode issues a six-digit code for the user's phone number and stores
// it with a TTL. The code is returned so an SMS connector can deliver it.
func (s *Service) RequestCode(ctx context.Context, userID string) (string, error) {
	user, err := s.ids.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, codeKeyPrefix+user.Phone, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	return code, nil
}

// Confirm checks the submitted code and marks the user's phone as verified.
// The code is single use.
func (s *Service) Confirm(ctx context.Context, userID, code string) error {
	user, err := s.ids.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	key := codeKeyPrefix + user.Phone
	stored, err := s.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("load verification code: %w", err)
	}
	if stored != code {
		return ErrCodeMismatch
	}

	if err := s.cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("consume verification code: %w", err)
	}
	return s.ids.MarkPhoneVerified(ctx, user.ID)
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
