package user

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-be/internal/apperror"
	"warehouse-be/internal/db"
	"warehouse-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, login, passwordHash string, role Role) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role Role) error
	UpdateRoles(ctx context.Context, roles map[int64]Role) error
	Delete(ctx context.Context, ids []int64) (int64, error)
	EnsureAdministrator(ctx context.Context, login, passwordHash string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, login, passwordHash string, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("login", login),
	)

	u := User{Login: login, PasswordHash: passwordHash, Role: role}
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind("INSERT INTO users (login, password_hash, role) VALUES (?, ?, ?) RETURNING id"),
		login, passwordHash, role,
	).Scan(&u.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("login already taken")
			return nil, ErrLoginExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, apperror.Database("user.Create", err)
	}

	return &u, nil
}

func (r *repository) FindByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		r.db.Rebind("SELECT id, login, password_hash, role FROM users WHERE login = ?"),
		login,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Database("user.FindByLogin", err)
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		r.db.Rebind("SELECT id, login, password_hash, role FROM users WHERE id = ?"),
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Database("user.FindByID", err)
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := r.db.SelectContext(ctx, &users, "SELECT id, login, role FROM users ORDER BY id"); err != nil {
		return nil, apperror.Database("user.List", err)
	}
	return users, nil
}

// UpdateRole overwrites the role; an unknown id updates nothing.
func (r *repository) UpdateRole(ctx context.Context, id int64, role Role) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE users SET role = ? WHERE id = ?"), role, id)
	return apperror.Database("user.UpdateRole", err)
}

func (r *repository) UpdateRoles(ctx context.Context, roles map[int64]Role) error {
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt := tx.Rebind("UPDATE users SET role = ? WHERE id = ?")
		for id, role := range roles {
			if _, err := tx.ExecContext(ctx, stmt, role, id); err != nil {
				return err
			}
		}
		return nil
	})
	return apperror.Database("user.UpdateRoles", err)
}

func (r *repository) Delete(ctx context.Context, ids []int64) (int64, error) {
	query, args, err := sqlx.In("DELETE FROM users WHERE id IN (?)", ids)
	if err != nil {
		return 0, apperror.Database("user.Delete", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, apperror.Database("user.Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Database("user.Delete", err)
	}
	return n, nil
}

// EnsureAdministrator inserts an Administrator row for login unless a user
// with that login already exists. It reports whether a row was created.
func (r *repository) EnsureAdministrator(ctx context.Context, login, passwordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO users (login, password_hash, role)
			SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM users WHERE login = ?)`),
		login, passwordHash, RoleAdministrator, login,
	)
	if err != nil {
		return false, apperror.Database("user.EnsureAdministrator", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Database("user.EnsureAdministrator", err)
	}
	return n > 0, nil
}
