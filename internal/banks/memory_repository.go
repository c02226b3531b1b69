package banks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Bank
}

// NewMemoryRepository constructs an in-memory bank directory for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Bank)}
}

func (r *memoryRepository) Create(_ context.Context, bank Bank) (Bank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	if bank.CreatedAt.IsZero() {
		bank.CreatedAt = time.Now().UTC()
	}
	r.storage[bank.ID] = bank
	return bank, nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bank, ok := r.storage[id]
	if !ok {
		return Bank{}, ErrNotFound
	}
	return bank, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bank, 0, len(r.storage))
	for _, b := range r.storage {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
