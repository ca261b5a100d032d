package catalog

import (
	"context"
	"strings"

	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListActive(ctx context.Context) ([]Cookie, error)
	List(ctx context.Context) ([]Cookie, error)
	Create(ctx context.Context, input CookieInput) (*Cookie, error)
	Update(ctx context.Context, id uint, input CookieInput) (*Cookie, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]Cookie, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) List(ctx context.Context) ([]Cookie, error) {
	return s.repo.List(ctx)
}

func validateInput(input CookieInput) error {
	if strings.TrimSpace(input.Name) == "" || input.Price <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CookieInput) (*Cookie, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	if err := validateInput(input); err != nil {
		log.Warn("rejected cookie input")
		return nil, err
	}

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create cookie", zap.Error(err))
		return nil, err
	}
	log.Info("cookie created", zap.Uint("cookie_id", c.ID))
	return c, nil
}

func (s *service) Update(ctx context.Context, id uint, input CookieInput) (*Cookie, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) SetActive(ctx context.Context, id uint, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
