package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("identity: user not found")
	// ErrExists indicates the phone number is already registered.
	ErrExists = errors.New("identity: user already exists")
)

// Repository persists users and referral links.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByReferralCode(ctx context.Context, code string) (User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	MarkPhoneVerified(ctx context.Context, id string) error
	CreateReferral(ctx context.Context, referral Referral) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (id, phone, email, pin_hash, referral_code, phone_verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Phone, user.Email, user.PINHash, user.ReferralCode, user.PhoneVerified, user.CreatedAt.UTC())
	return err
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	return r.findBy(ctx, `WHERE id = $1`, id)
}

// FindByPhone fetches a user by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.findBy(ctx, `WHERE phone = $1`, phone)
}

// FindByReferralCode fetches the owner of a referral code.
func (r *PostgresRepository) FindByReferralCode(ctx context.Context, code string) (User, error) {
	return r.findBy(ctx, `WHERE referral_code = $1`, code)
}

// ReferralCodeExists reports whether a referral code is taken.
func (r *PostgresRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE referral_code = $1)`, code).Scan(&exists)
	return exists, err
}

// MarkPhoneVerified flags the user's phone number as confirmed.
func (r *PostgresRepository) MarkPhoneVerified(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET phone_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateReferral stores a referral link.
func (r *PostgresRepository) CreateReferral(ctx context.Context, referral Referral) error {
	_, err := r.db.Exec(ctx, `INSERT INTO referrals (id, owner_id, referred_id, created_at) VALUES ($1, $2, $3, $4)`,
		referral.ID, referral.OwnerID, referral.ReferredID, referral.CreatedAt.UTC())
	return err
}

func (r *PostgresRepository) findBy(ctx context.Context, where string, arg any) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, phone, email, pin_hash, referral_code, phone_verified, created_at FROM users `+where, arg)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.ID, &user.Phone, &user.Email, &user.PINHash, &user.ReferralCode, &user.PhoneVerified, &createdAt); err != nil {
		return User{}, ErrNotFound
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
