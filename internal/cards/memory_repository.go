package cards

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Card
}

// NewMemoryRepository constructs an in-memory card store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Card)}
}

func (r *memoryRepository) Create(_ context.Context, card Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[card.ID] = card
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.storage[id]
	if !ok || card.IsDeleted {
		return Card{}, ErrNotFound
	}
	return card, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Card
	for _, card := range r.storage {
		if card.OwnerID == ownerID && !card.IsDeleted {
			out = append(out, card)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.storage[id]
	if !ok || card.IsDeleted {
		return ErrNotFound
	}
	card.IsActive = false
	card.IsDeleted = true
	r.storage[id] = card
	return nil
}
