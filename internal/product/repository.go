package product

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-be/internal/apperror"
	"warehouse-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	products := []Product{}
	err := r.db.SelectContext(ctx, &products,
		"SELECT id, name, weight, price, quantity FROM products ORDER BY id")
	if err != nil {
		return nil, apperror.Database("product.List", err)
	}
	return products, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p,
		r.db.Rebind("SELECT id, name, weight, price, quantity FROM products WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, apperror.Database("product.Get", err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO products (name, weight, price, quantity)
			VALUES (?, ?, ?, ?) RETURNING id`),
		p.Name, p.Weight, p.Price, p.Quantity,
	).Scan(&p.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("layer", "repository"),
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return apperror.Database("product.Create", err)
	}
	return nil
}

// Update applies patch; nil fields keep the stored column value.
func (r *repository) Update(ctx context.Context, id int64, patch Patch) error {
	query := `
		UPDATE products SET
			name = COALESCE(?, name),
			weight = COALESCE(?, weight),
			price = COALESCE(?, price),
			quantity = COALESCE(?, quantity)
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		patch.Name, patch.Weight, patch.Price, patch.Quantity, id)
	if err != nil {
		return apperror.Database("product.Update", err)
	}
	return expectOneRow(res, "product.Update")
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM products WHERE id = ?"), id)
	if err != nil {
		return apperror.Database("product.Delete", err)
	}
	return expectOneRow(res, "product.Delete")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Database(op, err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
