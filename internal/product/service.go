package product

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"warehouse-be/internal/logger"
	"warehouse-be/internal/metrics"
	"warehouse-be/internal/utils"

	"go.uber.org/zap"
)

// Recorder appends a line to the change history.
type Recorder interface {
	Record(ctx context.Context, description string) error
}

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Add(ctx context.Context, input AddInput) (*Product, error)
	Edit(ctx context.Context, input EditInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo    Repository
	history Recorder
}

func NewService(repo Repository, history Recorder) Service {
	return &service{repo: repo, history: history}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Add(ctx context.Context, input AddInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
	)

	name := strings.TrimSpace(input.Name)
	weight := strings.TrimSpace(input.Weight)
	if name == "" || weight == "" || strings.TrimSpace(input.Price) == "" || strings.TrimSpace(input.Quantity) == "" {
		return nil, ErrMissingFields
	}

	price, err := NormalizePrice(input.Price)
	if err != nil {
		return nil, err
	}
	qty, err := ParseQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}

	p := &Product{Name: name, Weight: weight, Price: price, Quantity: qty}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product added",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int64("quantity", p.Quantity),
	)
	metrics.RecordCatalogChange("add")

	if err := s.history.Record(ctx, fmt.Sprintf("Added product: %s in quantity %d", p.Name, p.Quantity)); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Edit(ctx context.Context, input EditInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Edit"),
		zap.Int64("product_id", input.ID),
	)

	if input.ID <= 0 {
		return nil, ErrInvalidProductID
	}

	patch, changes, err := buildPatch(input)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}

	if err := s.repo.Update(ctx, input.ID, patch); err != nil {
		log.Warn("failed to edit product", zap.Error(err))
		return nil, err
	}

	log.Info("product edited", zap.Strings("changes", changes))
	metrics.RecordCatalogChange("edit")

	desc := fmt.Sprintf("Edited product with ID %d: %s", input.ID, strings.Join(changes, ", "))
	if err := s.history.Record(ctx, desc); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, input.ID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidProductID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted", zap.Int64("product_id", id))
	metrics.RecordCatalogChange("delete")

	return s.history.Record(ctx, fmt.Sprintf("Deleted product with ID %d", id))
}

// buildPatch validates the provided fields and lists them as name=value pairs
// for the ledger line.
func buildPatch(input EditInput) (Patch, []string, error) {
	var (
		patch   Patch
		changes []string
	)

	if utils.Provided(input.Name) {
		v := strings.TrimSpace(*input.Name)
		patch.Name = &v
		changes = append(changes, "name="+v)
	}
	if utils.Provided(input.Weight) {
		v := strings.TrimSpace(*input.Weight)
		patch.Weight = &v
		changes = append(changes, "weight="+v)
	}
	if utils.Provided(input.Price) {
		v, err := NormalizePrice(*input.Price)
		if err != nil {
			return Patch{}, nil, err
		}
		patch.Price = &v
		changes = append(changes, "price="+v)
	}
	if utils.Provided(input.Quantity) {
		q, err := ParseQuantity(*input.Quantity)
		if err != nil {
			return Patch{}, nil, err
		}
		patch.Quantity = &q
		changes = append(changes, "quantity="+strconv.FormatInt(q, 10))
	}

	return patch, changes, nil
}
