package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"luxury-yachts-api/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func userRows(u domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
		AddRow(u.ID, u.Email, u.PasswordHash, u.Name, u.Role, time.Now())
}

func TestUserRepoFindByEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserRepo(gdb)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WithArgs("a@b.com", 1).
		WillReturnRows(userRows(domain.User{ID: 1, Email: "a@b.com", Role: domain.RoleAdmin}))

	u, err := r.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, domain.RoleAdmin, u.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindByEmailNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserRepo(gdb)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WithArgs("missing@b.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := r.FindByEmail(context.Background(), "missing@b.com")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserRepo(gdb)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WithArgs(int64(7), 1).
		WillReturnRows(userRows(domain.User{ID: 7, Email: "a@b.com", Role: domain.RoleUser}))

	u, err := r.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "a@b.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreate(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewUserRepo(gdb)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(3, 1))

	u := &domain.User{Email: "new@b.com", PasswordHash: "x", Name: "new", Role: domain.RoleUser}
	require.NoError(t, r.Create(context.Background(), u))
	require.Equal(t, int64(3), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
