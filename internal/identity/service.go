package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flite-pay/flite/internal/reference"
)

// Service manages the user lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user with a hashed PIN and a freshly generated unique
// referral code. If the credentials carry someone else's referral code, the
// referral link is recorded.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if len(creds.PIN) < 4 {
		return User{}, errors.New("PIN must be at least 4 digits")
	}
	if creds.Phone == "" {
		return User{}, errors.New("phone is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.PIN), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	code, err := reference.Generate(ctx, s.repo.ReferralCodeExists)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Phone:        creds.Phone,
		Email:        creds.Email,
		PINHash:      hash,
		ReferralCode: code,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	if creds.ReferralCode != "" {
		referrer, err := s.repo.FindByReferralCode(ctx, creds.ReferralCode)
		if err != nil {
			return User{}, errors.New("invalid referral code")
		}
		if err := s.repo.CreateReferral(ctx, Referral{
			ID:         uuid.NewString(),
			OwnerID:    referrer.ID,
			ReferredID: user.ID,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return User{}, err
		}
	}

	return user, nil
}

// Authenticate verifies phone and PIN.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByPhone(ctx, creds.Phone)
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PINHash, []byte(creds.PIN)); err != nil {
		return User{}, errors.New("invalid PIN")
	}
	return user, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}
