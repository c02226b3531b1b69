package transfers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transfer record. Records are written
// once with their final status; pending exists in the taxonomy for external
// settlement flows but is never assigned by the wallet operations.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// TransactionType distinguishes money entering from money leaving a wallet
// through a bank.
type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Kind names a transfer collection. References are unique per kind.
type Kind string

const (
	KindBank Kind = "bank"
	KindP2P  Kind = "p2p"
)

// BankTransfer is an immutable ledger row for a deposit from or withdrawal
// to an external bank account. NewBalance is an advisory audit snapshot set
// once right after insertion; balances are always recomputed from the full
// record set, never read back from it.
type BankTransfer struct {
	ID         string
	Reference  string
	OwnerID    string
	BankID     string
	Type       TransactionType
	Status     Status
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
	CreatedAt  time.Time
}

// P2PTransfer is an immutable ledger row moving funds between two wallet
// owners. The sender owns the record.
type P2PTransfer struct {
	ID          string
	Reference   string
	OwnerID     string
	SenderID    string
	RecipientID string
	Status      Status
	Amount      decimal.Decimal
	NewBalance  decimal.Decimal
	CreatedAt   time.Time
}
