package transfers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestMemoryStoreSumsCoalesceToZero(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := uuid.NewString()

	for name, sum := range map[string]func() (decimal.Decimal, error){
		"bank credit":  func() (decimal.Decimal, error) { return s.SumBank(ctx, user, TypeCredit) },
		"bank debit":   func() (decimal.Decimal, error) { return s.SumBank(ctx, user, TypeDebit) },
		"p2p received": func() (decimal.Decimal, error) { return s.SumP2PReceived(ctx, user) },
		"p2p sent":     func() (decimal.Decimal, error) { return s.SumP2PSent(ctx, user) },
	} {
		total, err := sum()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !total.IsZero() {
			t.Fatalf("%s: expected zero on empty store, got %s", name, total)
		}
	}
}

func TestMemoryStoreRejectsDuplicateReference(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := BankTransfer{Reference: "abc12345", OwnerID: uuid.NewString(), Type: TypeCredit, Status: StatusSuccess, Amount: decimal.NewFromInt(10)}
	if _, err := s.InsertBankTransfer(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertBankTransfer(ctx, first); !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("expected duplicate reference error, got %v", err)
	}

	// References are unique per kind, so the p2p collection may reuse it.
	p2p := P2PTransfer{Reference: "abc12345", OwnerID: uuid.NewString(), SenderID: uuid.NewString(), RecipientID: uuid.NewString(), Status: StatusSuccess, Amount: decimal.NewFromInt(5)}
	if _, err := s.InsertP2PTransfer(ctx, p2p); err != nil {
		t.Fatalf("insert p2p: %v", err)
	}

	exists, err := s.ReferenceExists(ctx, KindBank, "abc12345")
	if err != nil {
		t.Fatalf("reference exists: %v", err)
	}
	if !exists {
		t.Fatal("expected reference to exist in bank collection")
	}
}

func TestMemoryStoreFailedRowsNotSummed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := uuid.NewString()

	if _, err := s.InsertBankTransfer(ctx, BankTransfer{Reference: "r1", OwnerID: user, Type: TypeDebit, Status: StatusFailed, Amount: decimal.NewFromInt(75)}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	total, err := s.SumBank(ctx, user, TypeDebit)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("failed row counted in sum: %s", total)
	}
}

func TestMemoryStoreAttachNewBalance(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.InsertP2PTransfer(ctx, P2PTransfer{Reference: "r2", OwnerID: "u1", SenderID: "u1", RecipientID: "u2", Status: StatusSuccess, Amount: decimal.NewFromInt(20)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.AttachNewBalance(ctx, KindP2P, rec.ID, decimal.NewFromInt(80)); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := s.AttachNewBalance(ctx, KindP2P, "missing", decimal.Zero); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
