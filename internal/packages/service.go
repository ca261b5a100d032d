package packages

import (
	"context"
	"strings"

	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, onlyActive bool) ([]Pack, error)
	Create(ctx context.Context, input PackInput) (*Pack, error)
	Update(ctx context.Context, id uint, input PackInput) (*Pack, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, onlyActive bool) ([]Pack, error) {
	return s.repo.List(ctx, onlyActive)
}

func validateInput(input PackInput) error {
	if strings.TrimSpace(input.Name) == "" || input.Price <= 0 || len(input.CookieIDs) == 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *service) Create(ctx context.Context, input PackInput) (*Pack, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	if err := validateInput(input); err != nil {
		log.Warn("rejected pack input", zap.Int("cookies", len(input.CookieIDs)))
		return nil, err
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create pack", zap.Error(err))
		return nil, err
	}
	log.Info("pack created", zap.Uint("pack_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, input PackInput) (*Pack, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
