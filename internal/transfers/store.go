package transfers

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicateReference indicates an insert collided with the unique
	// reference index. The generator retries before inserting, so callers
	// normally never see this.
	ErrDuplicateReference = errors.New("transfers: duplicate reference")

	// ErrNotFound indicates the requested transfer record does not exist.
	ErrNotFound = errors.New("transfers: record not found")
)

// Store persists the append-only transfer collections. Aggregate sums must
// coalesce an empty result set to zero so balance arithmetic never fails on
// a fresh ledger. AttachNewBalance is the single permitted mutation: it sets
// the advisory snapshot once, immediately after insertion.
type Store interface {
	InsertBankTransfer(ctx context.Context, t BankTransfer) (BankTransfer, error)
	InsertP2PTransfer(ctx context.Context, t P2PTransfer) (P2PTransfer, error)
	AttachNewBalance(ctx context.Context, kind Kind, id string, balance decimal.Decimal) error

	// SumBank totals successful bank transfers of the given type owned by the user.
	SumBank(ctx context.Context, ownerID string, txType TransactionType) (decimal.Decimal, error)
	// SumP2PReceived totals successful p2p transfers addressed to the user.
	SumP2PReceived(ctx context.Context, userID string) (decimal.Decimal, error)
	// SumP2PSent totals successful p2p transfers sent by the user.
	SumP2PSent(ctx context.Context, userID string) (decimal.Decimal, error)

	ReferenceExists(ctx context.Context, kind Kind, ref string) (bool, error)
}
