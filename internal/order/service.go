package order

import (
	"context"

	"warehouse-be/internal/logger"
	"warehouse-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, userID, productID, quantity int64) (*Order, error)
	PreviewCancel(ctx context.Context, orderID int64) (*CancelPreview, error)
	Cancel(ctx context.Context, orderID int64) error
	CancelOwn(ctx context.Context, userID, orderID int64) error
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
	List(ctx context.Context) ([]Line, error)
	ListForUser(ctx context.Context, userID int64) ([]Line, error)
	CustomersWithOrders(ctx context.Context) ([]Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Place(ctx context.Context, userID, productID, quantity int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Place"),
		zap.Int64("product_id", productID),
		zap.Int64("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	o, err := s.repo.Place(ctx, userID, productID, quantity)
	if err != nil {
		log.Warn("failed to place order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed", zap.Int64("order_id", o.ID))
	metrics.RecordOrderPlaced(int(quantity))
	return o, nil
}

func (s *service) PreviewCancel(ctx context.Context, orderID int64) (*CancelPreview, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	return s.repo.PreviewCancel(ctx, orderID)
}

func (s *service) Cancel(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}

	o, err := s.repo.Cancel(ctx, orderID)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order cancelled",
		zap.Int64("order_id", o.ID),
		zap.Int64("product_id", o.ProductID),
		zap.Int64("restored", o.Quantity),
	)
	metrics.RecordOrderCancelled()
	return nil
}

// CancelOwn cancels orderID only when it belongs to userID.
func (s *service) CancelOwn(ctx context.Context, userID, orderID int64) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		logger.FromCtx(ctx).Warn("cancel refused for foreign order", zap.Int64("order_id", orderID))
		return ErrNotOrderOwner
	}

	return s.Cancel(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)
	metrics.RecordStatusUpdate(string(status))
	return nil
}

func (s *service) List(ctx context.Context) ([]Line, error) {
	lines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return withTotals(lines), nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]Line, error) {
	lines, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return withTotals(lines), nil
}

func (s *service) CustomersWithOrders(ctx context.Context) ([]Customer, error) {
	return s.repo.CustomersWithOrders(ctx)
}

func withTotals(lines []Line) []Line {
	for i := range lines {
		lines[i].Total = lines[i].Amount().StringFixed(2)
	}
	return lines
}
