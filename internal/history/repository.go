package history

import (
	"context"

	"warehouse-be/internal/apperror"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Insert(ctx context.Context, description string) (int64, error)
	List(ctx context.Context) ([]Record, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, description string) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind("INSERT INTO change_history (description) VALUES (?) RETURNING id"),
		description,
	).Scan(&id)
	if err != nil {
		return 0, apperror.Database("history.Insert", err)
	}
	return id, nil
}

func (r *repository) List(ctx context.Context) ([]Record, error) {
	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, "SELECT id, description FROM change_history ORDER BY id"); err != nil {
		return nil, apperror.Database("history.List", err)
	}
	return records, nil
}
