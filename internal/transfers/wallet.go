package transfers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/flite-pay/flite/internal/notification"
	"github.com/flite-pay/flite/internal/reference"
)

// Wallet issues ledger records and derives balances from them. The balance is
// never stored as mutable state: every read is a fold over the successful
// rows in the store, so failed withdrawals and transfers stay visible for
// audit without ever moving funds.
type Wallet struct {
	store    Store
	notifier notification.Notifier

	// locks serializes guard-plus-insert per owner so two concurrent
	// debits cannot both pass the funds check on the same stale balance.
	locks sync.Map
}

// NewWallet builds the wallet service. The notifier may be nil.
func NewWallet(store Store, notifier notification.Notifier) *Wallet {
	return &Wallet{store: store, notifier: notifier}
}

// Balance computes the user's current balance:
// (bank credits - bank debits) + (p2p received - p2p sent), successful rows
// only, empty sums coalescing to zero.
func (w *Wallet) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	timer := prometheus.NewTimer(balanceDuration)
	defer timer.ObserveDuration()

	bankCredit, err := w.store.SumBank(ctx, userID, TypeCredit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum bank credits: %w", err)
	}
	bankDebit, err := w.store.SumBank(ctx, userID, TypeDebit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum bank debits: %w", err)
	}
	received, err := w.store.SumP2PReceived(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum p2p received: %w", err)
	}
	sent, err := w.store.SumP2PSent(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum p2p sent: %w", err)
	}

	return bankCredit.Sub(bankDebit).Add(received.Sub(sent)), nil
}

// HasEnoughFunds reports whether the user's balance covers the amount. The
// check is advisory under concurrency; the issuing operations take the
// owner's lock before relying on it.
func (w *Wallet) HasEnoughFunds(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	balance, err := w.Balance(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance.GreaterThanOrEqual(amount), nil
}

// ReceiveBankDeposit records a credit from an external bank. Deposits cannot
// fail: the record is always written with success status, and the snapshot
// reflects the balance with the deposit included.
func (w *Wallet) ReceiveBankDeposit(ctx context.Context, userID string, amount decimal.Decimal, bankID string) (BankTransfer, error) {
	unlock := w.lockOwner(userID)
	defer unlock()

	ref, err := w.newReference(ctx, KindBank)
	if err != nil {
		return BankTransfer{}, err
	}

	deposit, err := w.store.InsertBankTransfer(ctx, BankTransfer{
		Reference: ref,
		OwnerID:   userID,
		BankID:    bankID,
		Type:      TypeCredit,
		Status:    StatusSuccess,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return BankTransfer{}, err
	}

	deposit.NewBalance, err = w.snapshot(ctx, KindBank, deposit.ID, userID)
	if err != nil {
		return BankTransfer{}, err
	}

	transfersIssued.WithLabelValues(string(KindBank), string(StatusSuccess)).Inc()
	return deposit, nil
}

// WithdrawToBank records a debit toward an external bank. The funds guard
// runs on the pre-withdrawal balance; an insufficient balance produces a
// failed record that is kept for audit but never counted as a debit.
func (w *Wallet) WithdrawToBank(ctx context.Context, userID string, amount decimal.Decimal, bankID string) (BankTransfer, error) {
	unlock := w.lockOwner(userID)
	defer unlock()

	ref, err := w.newReference(ctx, KindBank)
	if err != nil {
		return BankTransfer{}, err
	}

	status := StatusFailed
	ok, err := w.HasEnoughFunds(ctx, userID, amount)
	if err != nil {
		return BankTransfer{}, err
	}
	if ok {
		status = StatusSuccess
	}

	withdrawal, err := w.store.InsertBankTransfer(ctx, BankTransfer{
		Reference: ref,
		OwnerID:   userID,
		BankID:    bankID,
		Type:      TypeDebit,
		Status:    status,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return BankTransfer{}, err
	}

	withdrawal.NewBalance, err = w.snapshot(ctx, KindBank, withdrawal.ID, userID)
	if err != nil {
		return BankTransfer{}, err
	}

	transfersIssued.WithLabelValues(string(KindBank), string(status)).Inc()
	return withdrawal, nil
}

// Transfer moves funds between two wallet owners. The sender owns the
// record; an insufficient sender balance yields a failed record and leaves
// both balances untouched.
func (w *Wallet) Transfer(ctx context.Context, senderID, recipientID string, amount decimal.Decimal) (P2PTransfer, error) {
	unlock := w.lockOwner(senderID)
	defer unlock()

	ref, err := w.newReference(ctx, KindP2P)
	if err != nil {
		return P2PTransfer{}, err
	}

	status := StatusFailed
	ok, err := w.HasEnoughFunds(ctx, senderID, amount)
	if err != nil {
		return P2PTransfer{}, err
	}
	if ok {
		status = StatusSuccess
	}

	transfer, err := w.store.InsertP2PTransfer(ctx, P2PTransfer{
		Reference:   ref,
		OwnerID:     senderID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      status,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return P2PTransfer{}, err
	}

	transfer.NewBalance, err = w.snapshot(ctx, KindP2P, transfer.ID, senderID)
	if err != nil {
		return P2PTransfer{}, err
	}

	transfersIssued.WithLabelValues(string(KindP2P), string(status)).Inc()

	if status == StatusSuccess && w.notifier != nil {
		_ = w.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindP2PTransfer,
			Destination: recipientID,
			Body:        fmt.Sprintf("You received %s from user %s", amount.String(), senderID),
		})
	}

	return transfer, nil
}

// snapshot recomputes the owner's balance after the insert and persists it
// onto the new record, so the audit field agrees with the record's own
// outcome (a failed row leaves the balance unchanged).
func (w *Wallet) snapshot(ctx context.Context, kind Kind, id, ownerID string) (decimal.Decimal, error) {
	balance, err := w.Balance(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := w.store.AttachNewBalance(ctx, kind, id, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (w *Wallet) newReference(ctx context.Context, kind Kind) (string, error) {
	return reference.Generate(ctx, func(ctx context.Context, code string) (bool, error) {
		referenceRetries.Inc()
		return w.store.ReferenceExists(ctx, kind, code)
	})
}

func (w *Wallet) lockOwner(ownerID string) func() {
	mu, _ := w.locks.LoadOrStore(ownerID, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}
