package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func userRow(id int, email, role string, active bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "active", "created_at", "updated_at"}).
		AddRow(id, "Nguyen Van C", email, "$2a$10$hash", role, active, now, now)
}

func TestCreateUser_ReturnsRow(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING "+userColumns)).
		WithArgs("Nguyen Van C", "c@codegym.vn", "$2a$10$hash", "reception").
		WillReturnRows(userRow(1, "c@codegym.vn", "reception", true))

	u, err := repo.Create(context.Background(), "Nguyen Van C", "c@codegym.vn", "$2a$10$hash", "reception")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.Equal(t, "reception", u.Role)
	require.True(t, u.Active)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+userColumns+" FROM users WHERE email = $1")).
		WithArgs("ghost@codegym.vn").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@codegym.vn")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetActive_TogglesFlag(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE users SET active = $1, updated_at = NOW() WHERE id = $2 RETURNING "+userColumns)).
		WithArgs(false, 4).
		WillReturnRows(userRow(4, "c@codegym.vn", "trainer", false))

	u, err := repo.SetActive(context.Background(), 4, false)
	require.NoError(t, err)
	require.False(t, u.Active)
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE users SET name = $1, role = $2, updated_at = NOW() WHERE id = $3 RETURNING "+userColumns)).
		WithArgs("Nguyen Van C", "cashier", 99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Update(context.Background(), 99, "Nguyen Van C", "cashier")
	require.ErrorIs(t, err, ErrUserNotFound)
}
