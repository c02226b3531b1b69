package transfers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// PostgresStore persists transfer records in PostgreSQL. Both tables carry a
// unique index on reference, which is the authoritative uniqueness guard
// behind the generate-retry loop.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed transfer store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// InsertBankTransfer appends a bank transfer row.
func (s *PostgresStore) InsertBankTransfer(ctx context.Context, t BankTransfer) (BankTransfer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(ctx, `INSERT INTO bank_transfers
        (id, reference, owner_id, bank_id, transaction_type, status, amount, new_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Reference, t.OwnerID, t.BankID, t.Type, t.Status, t.Amount.String(), t.NewBalance.String(), t.CreatedAt)
	if err != nil {
		return BankTransfer{}, mapInsertError(err)
	}
	return t, nil
}

// InsertP2PTransfer appends a peer-to-peer transfer row.
func (s *PostgresStore) InsertP2PTransfer(ctx context.Context, t P2PTransfer) (P2PTransfer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(ctx, `INSERT INTO p2p_transfers
        (id, reference, owner_id, sender_id, recipient_id, status, amount, new_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Reference, t.OwnerID, t.SenderID, t.RecipientID, t.Status, t.Amount.String(), t.NewBalance.String(), t.CreatedAt)
	if err != nil {
		return P2PTransfer{}, mapInsertError(err)
	}
	return t, nil
}

// AttachNewBalance sets the advisory balance snapshot on a freshly inserted row.
func (s *PostgresStore) AttachNewBalance(ctx context.Context, kind Kind, id string, balance decimal.Decimal) error {
	table := "bank_transfers"
	if kind == KindP2P {
		table = "p2p_transfers"
	}
	cmd, err := s.db.Exec(ctx, `UPDATE `+table+` SET new_balance = $1 WHERE id = $2`, balance.String(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumBank totals successful bank transfers of one type for an owner,
// coalescing an empty set to zero.
func (s *PostgresStore) SumBank(ctx context.Context, ownerID string, txType TransactionType) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM bank_transfers
        WHERE owner_id = $1 AND status = $2 AND transaction_type = $3`
	return s.sum(ctx, query, ownerID, StatusSuccess, txType)
}

// SumP2PReceived totals successful p2p transfers addressed to the user.
func (s *PostgresStore) SumP2PReceived(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM p2p_transfers
        WHERE recipient_id = $1 AND status = $2`
	return s.sum(ctx, query, userID, StatusSuccess)
}

// SumP2PSent totals successful p2p transfers sent by the user.
func (s *PostgresStore) SumP2PSent(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM p2p_transfers
        WHERE sender_id = $1 AND status = $2`
	return s.sum(ctx, query, userID, StatusSuccess)
}

// ReferenceExists reports whether a reference is taken within a collection.
func (s *PostgresStore) ReferenceExists(ctx context.Context, kind Kind, ref string) (bool, error) {
	table := "bank_transfers"
	if kind == KindP2P {
		table = "p2p_transfers"
	}
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE reference = $1)`, ref).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var raw string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateReference
	}
	return err
}
