package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound signals that no user exists for the requested email.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken signals a registration attempt with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

const uniqueViolation = "23505"

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	UpdateAvatar(ctx context.Context, email, avatarURL string) (User, error)
	Confirm(ctx context.Context, email string) (User, error)
}

const userColumns = "email, hashed_password, avatar_url, confirmed, created_at"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. The email primary key turns duplicates into
// ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (email, hashed_password, avatar_url, confirmed, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		u.Email, u.HashedPassword, u.AvatarURL, u.Confirmed, u.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateAvatar overwrites the avatar URL for an existing user.
func (r *PostgresRepository) UpdateAvatar(ctx context.Context, email, avatarURL string) (User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET avatar_url = $1 WHERE email = $2 RETURNING `+userColumns,
		avatarURL, email)
	return scanUser(row)
}

// Confirm marks the user's email address as verified.
func (r *PostgresRepository) Confirm(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET confirmed = TRUE WHERE email = $1 RETURNING `+userColumns, email)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var createdAt time.Time
	if err := row.Scan(&u.Email, &u.HashedPassword, &u.AvatarURL, &u.Confirmed, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
