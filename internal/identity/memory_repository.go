package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	users     map[string]User
	referrals []Referral
}

// NewMemoryRepository builds an in-memory user store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return ErrExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindByReferralCode(_ context.Context, code string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ReferralCode == code {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByReferralCode(ctx, code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memoryRepository) MarkPhoneVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.PhoneVerified = true
	r.users[id] = user
	return nil
}

func (r *memoryRepository) CreateReferral(_ context.Context, referral Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.referrals = append(r.referrals, referral)
	return nil
}
