package banks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the bank does not exist in the directory.
var ErrNotFound = errors.New("banks: bank not found")

// Repository persists the bank directory.
type Repository interface {
	Create(ctx context.Context, bank Bank) (Bank, error)
	Get(ctx context.Context, id string) (Bank, error)
	List(ctx context.Context) ([]Bank, error)
}

// PostgresRepository stores banks in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a bank record.
func (r *PostgresRepository) Create(ctx context.Context, bank Bank) (Bank, error) {
	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	if bank.CreatedAt.IsZero() {
		bank.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO banks (id, name, code, created_at) VALUES ($1, $2, $3, $4)`,
		bank.ID, bank.Name, bank.Code, bank.CreatedAt)
	if err != nil {
		return Bank{}, err
	}
	return bank, nil
}

// Get fetches a bank by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Bank, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, code, created_at FROM banks WHERE id = $1`, id)
	var b Bank
	if err := row.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt); err != nil {
		return Bank{}, ErrNotFound
	}
	return b, nil
}

// List returns the full bank directory.
func (r *PostgresRepository) List(ctx context.Context) ([]Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, created_at FROM banks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bank
	for rows.Next() {
		var b Bank
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
