package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func userRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "phone", "created_at"}).
		AddRow(1, "a@example.com", "hash", "Anna", "Smith", "", now)
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	now := time.Now()
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password_hash, first_name, last_name, phone) VALUES ($1, $2, $3, $4, $5) RETURNING id, email, password_hash, first_name, last_name, phone, created_at")).
		WithArgs("a@example.com", "hash", "Anna", "Smith", "").
		WillReturnRows(userRows(now))

	u, err := repo.Create(ctx, "a@example.com", "hash", "Anna", "Smith", "")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.Equal(t, "Anna", u.FirstName)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, first_name, last_name, phone, created_at FROM users WHERE email = $1 AND password_hash = $2")).
		WithArgs("a@example.com", "hash").
		WillReturnRows(userRows(now))

	fu, err := repo.FindByCredentials(ctx, "a@example.com", "hash")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", fu.Email)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCreateUniqueViolation(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@example.com", "hash", "Anna", "Smith", "").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Create(context.Background(), "a@example.com", "hash", "Anna", "Smith", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestFindByCredentialsMiss(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, first_name, last_name, phone, created_at FROM users WHERE email = $1 AND password_hash = $2")).
		WithArgs("nobody@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByCredentials(context.Background(), "nobody@example.com", "hash")
	require.ErrorIs(t, err, ErrUserNotFound)
}
