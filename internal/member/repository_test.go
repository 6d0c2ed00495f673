package member

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

func setupMemberMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

var memberCols = []string{
	"id", "full_name", "gender", "birth_year", "phone", "email", "channel", "registration_date",
	"trainer_id", "plan_id", "subscription_start", "subscription_end", "active", "created_at", "updated_at",
}

func fullMemberRow(id int, end time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(memberCols).
		AddRow(id, "Tran Van A", "male", 1995, "0912345678", "a@example.com", "front_desk", now,
			nil, 3, now, end, true, now, now)
}

func TestRegister_MemberAndPaymentInOneTransaction(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := plan.AddMonths(start, 3)

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, duration_months, price, description, active, created_at, updated_at FROM plans WHERE id = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_months", "price", "description", "active", "created_at", "updated_at"}).
			AddRow(3, "Goi 3 thang", 3, 1300000, "", true, time.Now(), time.Now()))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members (full_name, gender, birth_year, phone, email, channel, registration_date, plan_id, subscription_start, subscription_end) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, full_name, gender, birth_year, phone, email, channel, registration_date, trainer_id, plan_id, subscription_start, subscription_end, active, created_at, updated_at")).
		WithArgs("Tran Van A", "male", 1995, "0912345678", "a@example.com", ChannelFrontDesk, start, 3, start, end).
		WillReturnRows(fullMemberRow(1, end))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments (member_id, plan_id, amount, kind, note) VALUES ($1, $2, $3, 'plan_payment', 'registration')")).
		WithArgs(1, 3, int64(1300000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	result, err := repo.Register(context.Background(), &Member{
		FullName:  "Tran Van A",
		Gender:    "male",
		BirthYear: 1995,
		Phone:     "0912345678",
		Email:     "a@example.com",
		Channel:   ChannelFrontDesk,
	}, 3)
	require.NoError(t, err)
	require.Equal(t, 1, result.Member.ID)
	require.Equal(t, "Goi 3 thang", result.PlanName)
	require.Equal(t, int64(1300000), result.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), &Member{Email: "a@example.com"}, 3)
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_InactivePlan(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, duration_months, price, description, active, created_at, updated_at FROM plans WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_months", "price", "description", "active", "created_at", "updated_at"}).
			AddRow(7, "Goi cu", 1, 400000, "", false, time.Now(), time.Now()))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), &Member{Email: "a@example.com"}, 7)
	require.ErrorIs(t, err, ErrPlanInactive)
}

func TestAssignTrainer_RejectsNonTrainerRole(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role, active FROM users WHERE id = $1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"role", "active"}).AddRow("cashier", true))

	_, err := repo.AssignTrainer(context.Background(), 42, 8)
	require.ErrorIs(t, err, ErrNotATrainer)
}

func TestAssignTrainer_RejectsInactiveTrainer(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role, active FROM users WHERE id = $1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"role", "active"}).AddRow("trainer", false))

	_, err := repo.AssignTrainer(context.Background(), 42, 8)
	require.ErrorIs(t, err, ErrTrainerInactive)
}

func TestAssignTrainer_UpdatesMember(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role, active FROM users WHERE id = $1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"role", "active"}).AddRow("trainer", true))

	end := time.Now().AddDate(0, 1, 0)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE members SET trainer_id = $1, updated_at = NOW() WHERE id = $2 RETURNING id, full_name, gender, birth_year, phone, email, channel, registration_date, trainer_id, plan_id, subscription_start, subscription_end, active, created_at, updated_at")).
		WithArgs(8, 42).
		WillReturnRows(fullMemberRow(42, end))

	m, err := repo.AssignTrainer(context.Background(), 42, 8)
	require.NoError(t, err)
	require.Equal(t, 42, m.ID)
}

func TestListExpiring_ActiveMembersInWindow(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+memberColumns+" FROM members WHERE active AND subscription_end >= $1 AND subscription_end < $2 ORDER BY subscription_end, id")).
		WithArgs(from, to).
		WillReturnRows(fullMemberRow(7, from))

	members, err := repo.ListExpiring(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, 7, members[0].ID)
}

func TestDeactivate_NotFound(t *testing.T) {
	repo, mock, close := setupMemberMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE members SET active = false, updated_at = NOW() WHERE id = $1 AND active")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Deactivate(context.Background(), 99), ErrMemberNotFound)
}
