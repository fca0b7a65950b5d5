package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"poolbook/internal/db"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const uniqueViolation = "23505"

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user row. The email uniqueness constraint is the
// authoritative guard; a violation surfaces as ErrEmailTaken even when a
// prior EmailExists check raced with another registration.
func (r *Repository) Create(ctx context.Context, email, passwordHash, firstName, lastName, phone string) (*User, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, first_name, last_name, phone, created_at
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, email, passwordHash, firstName, lastName, phone)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

// FindByCredentials resolves a user by exact (email, password digest) match.
// A miss never says whether the email exists.
func (r *Repository) FindByCredentials(ctx context.Context, email, passwordHash string) (*User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at
		FROM users
		WHERE email = $1 AND password_hash = $2
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, email, passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}
