package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"warehouse-be/internal/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("INSERT INTO users (login, password_hash, role) VALUES (?, ?, ?) RETURNING id")

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).
			WithArgs("alice", "hash", RoleCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		u, err := repo.Create(ctx, "alice", "hash", RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, int64(3), u.ID)
		assert.Equal(t, "alice", u.Login)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateLogin", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_login_key"})

		_, err := repo.Create(ctx, "alice", "hash", RoleCustomer)
		assert.ErrorIs(t, err, ErrLoginExists)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("DBError", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		dbErr := errors.New("db error")
		mock.ExpectQuery(query).WillReturnError(dbErr)

		_, err := repo.Create(ctx, "alice", "hash", RoleCustomer)
		assert.ErrorIs(t, err, apperror.ErrDatabase)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestRepository_FindByLogin(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT id, login, password_hash, role FROM users WHERE login = ?")

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "role"}).
				AddRow(2, "bob", "hash", "Employee"))

		u, err := repo.FindByLogin(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(2), u.ID)
		assert.Equal(t, RoleEmployee, u.Role)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("boom"))

		_, err := repo.FindByLogin(ctx, "bob")
		assert.ErrorIs(t, err, apperror.ErrDatabase)
	})
}

func TestRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT id, login, password_hash, role FROM users WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "role"}).
				AddRow(2, "bob", "hash", "Customer"))

		u, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "bob", u.Login)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 9)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, role FROM users ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "role"}).
			AddRow(1, "admin", "Administrator").
			AddRow(2, "alice", "Customer"))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Login)
	assert.Equal(t, RoleCustomer, users[1].Role)
	assert.Empty(t, users[1].PasswordHash)
}

func TestRepository_UpdateRole(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = ? WHERE id = ?")).
		WithArgs(RoleEmployee, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateRole(context.Background(), 42, RoleEmployee))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateRoles(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE users SET role = ? WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(query).
			WithArgs(RoleAdministrator, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateRoles(context.Background(), map[int64]Role{5: RoleAdministrator})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnError(errors.New("locked"))
		mock.ExpectRollback()

		err := repo.UpdateRoles(context.Background(), map[int64]Role{5: RoleAdministrator})
		assert.ErrorIs(t, err, apperror.ErrDatabase)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id IN (?, ?, ?)")).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.Delete(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRepository_EnsureAdministrator(t *testing.T) {
	query := `INSERT INTO users \(login, password_hash, role\)\s+SELECT \?, \?, \? WHERE NOT EXISTS`

	repo, mock := newMockRepo(t)
	mock.ExpectExec(query).
		WithArgs("admin", "hash", RoleAdministrator, "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(query).
		WithArgs("admin", "hash", RoleAdministrator, "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.EnsureAdministrator(context.Background(), "admin", "hash")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureAdministrator(context.Background(), "admin", "hash")
	require.NoError(t, err)
	assert.False(t, created)
}
