package transfers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestWallet() *Wallet {
	return NewWallet(NewMemoryStore(), nil)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustBalance(t *testing.T, w *Wallet, userID string) decimal.Decimal {
	t.Helper()
	balance, err := w.Balance(context.Background(), userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return balance
}

func TestBalanceEmptyLedgerIsZero(t *testing.T) {
	w := newTestWallet()
	if got := mustBalance(t, w, uuid.NewString()); !got.IsZero() {
		t.Fatalf("expected zero balance on empty ledger, got %s", got)
	}
}

func TestReceiveBankDepositAlwaysSucceeds(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()

	deposit, err := w.ReceiveBankDeposit(ctx, user, dec("100"), "bank-1")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if deposit.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", deposit.Status)
	}
	if deposit.Type != TypeCredit {
		t.Fatalf("expected credit, got %s", deposit.Type)
	}
	if deposit.Reference == "" {
		t.Fatal("expected a reference")
	}
	if !deposit.NewBalance.Equal(dec("100")) {
		t.Fatalf("expected snapshot 100, got %s", deposit.NewBalance)
	}
	if got := mustBalance(t, w, user); !got.Equal(dec("100")) {
		t.Fatalf("expected balance 100, got %s", got)
	}
}

func TestWithdrawExceedingBalanceFails(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()

	if _, err := w.ReceiveBankDeposit(ctx, user, dec("100"), "bank-1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	withdrawal, err := w.WithdrawToBank(ctx, user, dec("150"), "bank-1")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if withdrawal.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", withdrawal.Status)
	}
	if withdrawal.Type != TypeDebit {
		t.Fatalf("expected debit, got %s", withdrawal.Type)
	}
	// A failed debit is stored for audit but never counted.
	if got := mustBalance(t, w, user); !got.Equal(dec("100")) {
		t.Fatalf("expected balance unchanged at 100, got %s", got)
	}
	if !withdrawal.NewBalance.Equal(dec("100")) {
		t.Fatalf("expected snapshot 100 on failed withdrawal, got %s", withdrawal.NewBalance)
	}
}

func TestP2PTransferInsufficientFunds(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	sender := uuid.NewString()
	recipient := uuid.NewString()

	if _, err := w.ReceiveBankDeposit(ctx, sender, dec("50"), "bank-1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	transfer, err := w.Transfer(ctx, sender, recipient, dec("80"))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if transfer.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", transfer.Status)
	}
	if transfer.OwnerID != sender {
		t.Fatalf("expected owner %s, got %s", sender, transfer.OwnerID)
	}
	if got := mustBalance(t, w, sender); !got.Equal(dec("50")) {
		t.Fatalf("sender balance moved on failed transfer: %s", got)
	}
	if got := mustBalance(t, w, recipient); !got.IsZero() {
		t.Fatalf("recipient balance moved on failed transfer: %s", got)
	}
}

func TestDepositWithdrawTransferScenario(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()
	other := uuid.NewString()

	if _, err := w.ReceiveBankDeposit(ctx, user, dec("100"), "bank-1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if got := mustBalance(t, w, user); !got.Equal(dec("100")) {
		t.Fatalf("after deposit expected 100, got %s", got)
	}

	withdrawal, err := w.WithdrawToBank(ctx, user, dec("150"), "bank-1")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if withdrawal.Status != StatusFailed {
		t.Fatalf("expected failed withdrawal, got %s", withdrawal.Status)
	}
	if got := mustBalance(t, w, user); !got.Equal(dec("100")) {
		t.Fatalf("after failed withdrawal expected 100, got %s", got)
	}

	transfer, err := w.Transfer(ctx, user, other, dec("60"))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if transfer.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", transfer.Status)
	}
	if !transfer.NewBalance.Equal(dec("40")) {
		t.Fatalf("expected snapshot 40, got %s", transfer.NewBalance)
	}
	if got := mustBalance(t, w, user); !got.Equal(dec("40")) {
		t.Fatalf("expected sender balance 40, got %s", got)
	}
	if got := mustBalance(t, w, other); !got.Equal(dec("60")) {
		t.Fatalf("expected recipient balance 60, got %s", got)
	}
}

func TestHasEnoughFundsBoundary(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()

	if _, err := w.ReceiveBankDeposit(ctx, user, dec("100"), "bank-1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	ok, err := w.HasEnoughFunds(ctx, user, dec("100"))
	if err != nil {
		t.Fatalf("funds check: %v", err)
	}
	if !ok {
		t.Fatal("expected amount == balance to pass")
	}

	ok, err = w.HasEnoughFunds(ctx, user, dec("100.01"))
	if err != nil {
		t.Fatalf("funds check: %v", err)
	}
	if ok {
		t.Fatal("expected amount just above balance to fail")
	}
}

func TestBalanceMatchesSignedSumOfRandomHistory(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()
	peer := uuid.NewString()

	rng := rand.New(rand.NewSource(42))
	expected := decimal.Zero

	// Seed the peer so inbound p2p transfers can always succeed.
	if _, err := w.ReceiveBankDeposit(ctx, peer, dec("1000000"), "bank-1"); err != nil {
		t.Fatalf("seed peer: %v", err)
	}

	for i := 0; i < 200; i++ {
		amount := decimal.NewFromInt(int64(rng.Intn(500) + 1)).Div(decimal.NewFromInt(100))
		switch rng.Intn(4) {
		case 0:
			if _, err := w.ReceiveBankDeposit(ctx, user, amount, "bank-1"); err != nil {
				t.Fatalf("deposit %d: %v", i, err)
			}
			expected = expected.Add(amount)
		case 1:
			rec, err := w.WithdrawToBank(ctx, user, amount, "bank-1")
			if err != nil {
				t.Fatalf("withdraw %d: %v", i, err)
			}
			if rec.Status == StatusSuccess {
				expected = expected.Sub(amount)
			}
		case 2:
			rec, err := w.Transfer(ctx, user, peer, amount)
			if err != nil {
				t.Fatalf("send %d: %v", i, err)
			}
			if rec.Status == StatusSuccess {
				expected = expected.Sub(amount)
			}
		case 3:
			rec, err := w.Transfer(ctx, peer, user, amount)
			if err != nil {
				t.Fatalf("receive %d: %v", i, err)
			}
			if rec.Status == StatusSuccess {
				expected = expected.Add(amount)
			}
		}
	}

	if got := mustBalance(t, w, user); !got.Equal(expected) {
		t.Fatalf("expected balance %s, got %s", expected, got)
	}
}

func TestConcurrentWithdrawalsCannotDoubleSpend(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()

	if _, err := w.ReceiveBankDeposit(ctx, user, dec("100"), "bank-1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := w.WithdrawToBank(ctx, user, dec("60"), "bank-1"); err != nil {
				t.Errorf("withdraw %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	// Only one 60 withdrawal fits into a 100 balance.
	if got := mustBalance(t, w, user); !got.Equal(dec("40")) {
		t.Fatalf("double spend: expected balance 40, got %s", got)
	}
}

func TestReferencesUniqueAcrossRecords(t *testing.T) {
	w := newTestWallet()
	ctx := context.Background()
	user := uuid.NewString()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec, err := w.ReceiveBankDeposit(ctx, user, dec("1"), fmt.Sprintf("bank-%d", i))
		if err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
		if seen[rec.Reference] {
			t.Fatalf("duplicate reference %q", rec.Reference)
		}
		seen[rec.Reference] = true
	}
}
