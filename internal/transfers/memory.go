package transfers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memoryStore struct {
	mu   sync.RWMutex
	bank []BankTransfer
	p2p  []P2PTransfer
	refs map[Kind]map[string]bool
}

// NewMemoryStore creates a concurrency-safe in-memory transfer store useful
// for unit tests.
func NewMemoryStore() Store {
	return &memoryStore{
		refs: map[Kind]map[string]bool{
			KindBank: make(map[string]bool),
			KindP2P:  make(map[string]bool),
		},
	}
}

func (s *memoryStore) InsertBankTransfer(_ context.Context, t BankTransfer) (BankTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs[KindBank][t.Reference] {
		return BankTransfer{}, ErrDuplicateReference
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.refs[KindBank][t.Reference] = true
	s.bank = append(s.bank, t)
	return t, nil
}

func (s *memoryStore) InsertP2PTransfer(_ context.Context, t P2PTransfer) (P2PTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs[KindP2P][t.Reference] {
		return P2PTransfer{}, ErrDuplicateReference
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.refs[KindP2P][t.Reference] = true
	s.p2p = append(s.p2p, t)
	return t, nil
}

func (s *memoryStore) AttachNewBalance(_ context.Context, kind Kind, id string, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == KindBank {
		for i := range s.bank {
			if s.bank[i].ID == id {
				s.bank[i].NewBalance = balance
				return nil
			}
		}
		return ErrNotFound
	}
	for i := range s.p2p {
		if s.p2p[i].ID == id {
			s.p2p[i].NewBalance = balance
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryStore) SumBank(_ context.Context, ownerID string, txType TransactionType) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, t := range s.bank {
		if t.OwnerID == ownerID && t.Status == StatusSuccess && t.Type == txType {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *memoryStore) SumP2PReceived(_ context.Context, userID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, t := range s.p2p {
		if t.RecipientID == userID && t.Status == StatusSuccess {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *memoryStore) SumP2PSent(_ context.Context, userID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, t := range s.p2p {
		if t.SenderID == userID && t.Status == StatusSuccess {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (s *memoryStore) ReferenceExists(_ context.Context, kind Kind, ref string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refs[kind][ref], nil
}
