package history

import (
	"context"
	"strings"

	"warehouse-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Record(ctx context.Context, description string) error
	ListAll(ctx context.Context) ([]Record, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}

	id, err := s.repo.Insert(ctx, description)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to append history record",
			zap.String("layer", "service"),
			zap.String("description", description),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Debug("history record appended", zap.Int64("record_id", id))
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}
