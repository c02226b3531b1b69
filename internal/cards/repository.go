package cards

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the card does not exist or is soft deleted.
var ErrNotFound = errors.New("cards: card not found")

// Repository persists linked cards.
type Repository interface {
	Create(ctx context.Context, card Card) error
	Get(ctx context.Context, id string) (Card, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Card, error)
	SoftDelete(ctx context.Context, id string) error
}

// PostgresRepository stores cards in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed card repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a card row.
func (r *PostgresRepository) Create(ctx context.Context, card Card) error {
	_, err := r.db.Exec(ctx, `INSERT INTO cards
        (id, owner_id, number, brand, bank, expiry_month, expiry_year, first_name, last_name, is_active, is_deleted, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		card.ID, card.OwnerID, card.Number, card.Brand, card.Bank, card.ExpiryMonth, card.ExpiryYear,
		card.FirstName, card.LastName, card.IsActive, card.IsDeleted, card.CreatedAt.UTC())
	return err
}

// Get fetches a card that has not been soft deleted.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Card, error) {
	row := r.db.QueryRow(ctx, selectCard+` WHERE id = $1 AND is_deleted = FALSE`, id)
	return scanCard(row)
}

// ListByOwner returns the owner's cards, excluding soft-deleted ones.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Card, error) {
	rows, err := r.db.Query(ctx, selectCard+` WHERE owner_id = $1 AND is_deleted = FALSE ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, rows.Err()
}

// SoftDelete deactivates a card without removing its row.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE cards SET is_active = FALSE, is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectCard = `SELECT id, owner_id, number, brand, bank, expiry_month, expiry_year,
    first_name, last_name, is_active, is_deleted, created_at FROM cards`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (Card, error) {
	var (
		card      Card
		createdAt time.Time
	)
	if err := row.Scan(&card.ID, &card.OwnerID, &card.Number, &card.Brand, &card.Bank,
		&card.ExpiryMonth, &card.ExpiryYear, &card.FirstName, &card.LastName,
		&card.IsActive, &card.IsDeleted, &createdAt); err != nil {
		return Card{}, ErrNotFound
	}
	card.CreatedAt = createdAt.UTC()
	return card, nil
}
