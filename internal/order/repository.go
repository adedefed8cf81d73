package order

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
	Place(ctx context.Context, userID, productID, quantity int64) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	PreviewCancel(ctx context.Context, id int64) (*CancelPreview, error)
	Cancel(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	List(ctx context.Context) ([]Line, error)
	ListForUser(ctx context.Context, userID int64) ([]Line, error)
	CustomersWithOrders(ctx context.Context) ([]Customer, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const lineSelect = `
	SELECT o.id, o.user_id, COALESCE(u.login, '') AS user_login,
		o.product_id, COALESCE(p.name, '') AS product_name,
		o.quantity, o.status, COALESCE(p.price, '0') AS unit_price
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN products p ON p.id = o.product_id
`

// Place inserts an Accepted order and takes its quantity off stock in one
// transaction.
func (r *repository) Place(ctx context.Context, userID, productID, quantity int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Place"),
		zap.Int64("product_id", productID),
	)

	o := &Order{UserID: userID, ProductID: productID, Quantity: quantity, Status: StatusAccepted}

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var onHand int64
		err := tx.GetContext(ctx, &onHand, tx.Rebind("SELECT quantity FROM products WHERE id = ?"), productID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		var users int
		if err := tx.GetContext(ctx, &users, tx.Rebind("SELECT COUNT(1) FROM users WHERE id = ?"), userID); err != nil {
			return err
		}
		if users == 0 {
			return ErrUserNotFound
		}

		if quantity > onHand {
			log.Info("insufficient stock", zap.Int64("requested", quantity), zap.Int64("on_hand", onHand))
			return ErrInsufficientStock
		}

		err = tx.QueryRowxContext(ctx,
			tx.Rebind("INSERT INTO orders (user_id, product_id, quantity, status) VALUES (?, ?, ?, ?) RETURNING id"),
			userID, productID, quantity, StatusAccepted,
		).Scan(&o.ID)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind("UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?"),
			quantity, productID, quantity,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Database("order.Place", err)
	}

	return o, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.db.GetContext(ctx, &o,
		r.db.Rebind("SELECT id, user_id, product_id, quantity, status FROM orders WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, apperror.Database("order.Get", err)
	}
	return &o, nil
}

func (r *repository) PreviewCancel(ctx context.Context, id int64) (*CancelPreview, error) {
	query := `
		SELECT o.id AS order_id, o.user_id, o.product_id, o.quantity,
			COALESCE(p.name, '') AS product_name,
			COALESCE(p.quantity, 0) AS on_hand
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		WHERE o.id = ?
	`

	var p CancelPreview
	err := r.db.GetContext(ctx, &p, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, apperror.Database("order.PreviewCancel", err)
	}

	p.OnHandAfter = p.OnHand + p.Quantity
	return &p, nil
}

// Cancel puts the order's quantity back on its product (matched by id) and
// deletes the order, in one transaction.
func (r *repository) Cancel(ctx context.Context, id int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Cancel"),
		zap.Int64("order_id", id),
	)

	var o Order
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &o,
			tx.Rebind("SELECT id, user_id, product_id, quantity, status FROM orders WHERE id = ?"), id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind("UPDATE products SET quantity = quantity + ? WHERE id = ?"),
			o.Quantity, o.ProductID,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			log.Warn("product of cancelled order no longer exists", zap.Int64("product_id", o.ProductID))
		}

		_, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM orders WHERE id = ?"), id)
		return err
	})
	if err != nil {
		return nil, apperror.Database("order.Cancel", err)
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE orders SET status = ? WHERE id = ?"), status, id)
	if err != nil {
		return apperror.Database("order.UpdateStatus", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Database("order.UpdateStatus", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Line, error) {
	lines := []Line{}
	if err := r.db.SelectContext(ctx, &lines, lineSelect+" ORDER BY o.id"); err != nil {
		return nil, apperror.Database("order.List", err)
	}
	return lines, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64) ([]Line, error) {
	lines := []Line{}
	err := r.db.SelectContext(ctx, &lines, r.db.Rebind(lineSelect+" WHERE o.user_id = ? ORDER BY o.id"), userID)
	if err != nil {
		return nil, apperror.Database("order.ListForUser", err)
	}
	return lines, nil
}

func (r *repository) CustomersWithOrders(ctx context.Context) ([]Customer, error) {
	query := `
		SELECT DISTINCT u.id AS user_id, u.login
		FROM users u
		JOIN orders o ON o.user_id = u.id
		ORDER BY u.id
	`

	customers := []Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, apperror.Database("order.CustomersWithOrders", err)
	}
	return customers, nil
}
