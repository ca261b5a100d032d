package customer

import (
	"context"

	"flavis-be/internal/logger"
	"flavis-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	// Lookup finds a returning customer for form prefill. Names come back
	// title-cased ready for display.
	Lookup(ctx context.Context, phone string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	UpdateNotes(ctx context.Context, phone, notes string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Lookup(ctx context.Context, phone string) (*Customer, error) {
	c, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	c.FirstName = utils.ToTitleCase(c.FirstName)
	c.LastName = utils.ToTitleCase(c.LastName)
	return c, nil
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateNotes(ctx context.Context, phone, notes string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateNotes"),
		zap.String("phone", phone),
	)

	if err := s.repo.UpdateNotes(ctx, phone, notes); err != nil {
		log.Error("failed to update notes", zap.Error(err))
		return err
	}
	log.Info("customer notes updated")
	return nil
}
