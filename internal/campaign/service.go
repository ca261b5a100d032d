package campaign

import (
	"context"
	"time"

	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// GetActive returns the storefront snapshot: latest campaign plus its
	// availability as of the fetch. Fails closed: a missing campaign or a
	// repository error both come back as a closed snapshot.
	GetActive(ctx context.Context) (Snapshot, error)
	List(ctx context.Context) ([]*Campaign, error)
	Create(ctx context.Context, input CreateInput) (*Campaign, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*Campaign, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GetActive(ctx context.Context) (Snapshot, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetActive"),
	)

	c, err := s.repo.GetLatest(ctx)
	if err != nil {
		if err != ErrNoActive {
			log.Error("failed to fetch active campaign", zap.Error(err))
		}
		// Absent or unreachable is never "open".
		return Snap(nil, s.now()), err
	}

	snap := Snap(c, s.now())
	log.Debug("campaign snapshot",
		zap.Uint("campaign_id", c.ID),
		zap.Bool("is_closed", snap.IsClosed),
		zap.Int("remaining", snap.Remaining),
	)
	return snap, nil
}

func (s *service) List(ctx context.Context) ([]*Campaign, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Campaign, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	if input.StockCap <= 0 || input.ClosesAt.Before(input.OpensAt) {
		log.Warn("rejected campaign input",
			zap.Int("stock_cap", input.StockCap))
		return nil, ErrInvalidInput
	}

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create campaign", zap.Error(err))
		return nil, err
	}
	log.Info("campaign created", zap.Uint("campaign_id", c.ID))
	return c, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*Campaign, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("campaign_id", id),
	)

	if input.StockCap != nil && *input.StockCap <= 0 {
		return nil, ErrInvalidInput
	}

	c, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update campaign", zap.Error(err))
		return nil, err
	}
	log.Info("campaign updated", zap.Bool("active", c.Active))
	return c, nil
}
