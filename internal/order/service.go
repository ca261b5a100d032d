package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"flavis-be/internal/campaign"
	"flavis-be/internal/draft"
	"flavis-be/internal/guard"
	"flavis-be/internal/logger"
	"flavis-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	// Submit runs the whole order flow for one client: guard check,
	// validation, availability and stock check, then the transactional
	// write. Only validation failures feed the lockout; stock, closed
	// campaign, and backend failures never do, and the persisted draft is
	// preserved on every failure path.
	Submit(ctx context.Context, clientKey string, d *draft.Draft) (*Order, error)
	// GuardStatus exposes the client's lockout state for the countdown UI.
	GuardStatus(ctx context.Context, clientKey string) (guard.Status, error)
	List(ctx context.Context) ([]*Order, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*Order, error)
	MarkSeen(ctx context.Context, id uint) error
	Void(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	campaigns campaign.Service
	guard     *guard.Guard
	drafts    *draft.Store
}

func NewService(repo Repository, campaigns campaign.Service, g *guard.Guard, drafts *draft.Store) Service {
	return &service{
		repo:      repo,
		campaigns: campaigns,
		guard:     g,
		drafts:    drafts,
	}
}

func (s *service) Submit(ctx context.Context, clientKey string, d *draft.Draft) (*Order, error) {
	start := time.Now()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
		zap.String("client", clientKey),
	)

	// 1. Lockout gate. Re-reads the persisted deadline so a submit racing
	// the lock's expiry resolves against the wall clock, not a stale flag.
	st, err := s.guard.Status(ctx, clientKey)
	if err != nil {
		metrics.ObserveOrderSubmit("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("guard status: %w", err)
	}
	if st.Locked {
		log.Warn("submission rejected while locked",
			zap.Duration("remaining", st.Remaining),
			zap.Int("lock_level", st.LockLevel),
		)
		metrics.ObserveOrderSubmit("locked", time.Since(start).Seconds())
		return nil, &LockedError{Remaining: st.Remaining, Level: st.LockLevel}
	}

	// 2. Field validation. This is the only failure class that escalates.
	if errs := draft.Validate(d); errs.Any() {
		gs, gErr := s.guard.RecordFailure(ctx, clientKey, guard.FailureValidation)
		if gErr != nil {
			log.Error("failed to record validation failure", zap.Error(gErr))
		}
		if gs.Locked {
			metrics.LockoutsTriggered.WithLabelValues(strconv.Itoa(gs.LockLevel)).Inc()
		}
		log.Info("submission failed validation",
			zap.Strings("fields", errs.Fields()),
			zap.Bool("locked", gs.Locked),
		)
		metrics.ObserveOrderSubmit("rejected_validation", time.Since(start).Seconds())
		return nil, &ValidationError{
			Fields:    errs.Fields(),
			Locked:    gs.Locked,
			Remaining: gs.Remaining,
		}
	}

	// 3. Availability and stock, against a fresh snapshot.
	snap, err := s.campaigns.GetActive(ctx)
	if err != nil && !errors.Is(err, campaign.ErrNoActive) {
		metrics.ObserveOrderSubmit("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("fetch campaign: %w", err)
	}
	if snap.IsClosed {
		_, _ = s.guard.RecordFailure(ctx, clientKey, guard.FailureCampaignClosed)
		metrics.ObserveOrderSubmit("rejected_closed", time.Since(start).Seconds())
		return nil, ErrCampaignClosed
	}

	quantity := d.TotalQuantity()
	if quantity > snap.Remaining {
		_, _ = s.guard.RecordFailure(ctx, clientKey, guard.FailureStock)
		log.Info("submission exceeds remaining stock",
			zap.Int("requested", quantity),
			zap.Int("available", snap.Remaining),
		)
		metrics.ObserveOrderSubmit("rejected_stock", time.Since(start).Seconds())
		return nil, &StockError{Requested: quantity, Available: snap.Remaining}
	}

	// 4. Transactional write. The repo re-validates stock inside the tx;
	// a concurrent drain comes back as ErrInsufficientStock.
	o := buildOrder(snap.Campaign.ID, d)
	created, err := s.repo.CreateOrderTx(ctx, o, d.SaveData)
	if err != nil {
		_, _ = s.guard.RecordFailure(ctx, clientKey, guard.FailureBackend)
		log.Error("failed to create order", zap.Error(err))
		if errors.Is(err, ErrInsufficientStock) {
			metrics.ObserveOrderSubmit("rejected_stock", time.Since(start).Seconds())
			return nil, &StockError{Requested: quantity, Available: snap.Remaining}
		}
		metrics.ObserveOrderSubmit("error", time.Since(start).Seconds())
		return nil, err
	}

	// 5. Success: the only transition that unconditionally clears the
	// guard's escalation level, plus the persisted draft.
	if err := s.guard.RecordSuccess(ctx, clientKey); err != nil {
		log.Error("failed to reset guard after success", zap.Error(err))
	}
	if err := s.drafts.Clear(ctx, clientKey); err != nil {
		log.Error("failed to clear draft after success", zap.Error(err))
	}

	log.Info("order accepted",
		zap.Uint("order_id", created.ID),
		zap.Uint("campaign_id", created.CampaignID),
		zap.Int("quantity", quantity),
		zap.Float64("total", created.Total),
	)
	metrics.ObserveOrderSubmit("accepted", time.Since(start).Seconds())
	return created, nil
}

func buildOrder(campaignID uint, d *draft.Draft) *Order {
	o := &Order{
		CampaignID:    campaignID,
		CustomerPhone: d.Phone,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Total:         d.Total(),
		ReceiptURL:    d.ReceiptURL,
		DeliveryMode:  d.DeliveryMode,
		Address:       d.Address,
	}
	for _, l := range d.Lines {
		if l.Quantity <= 0 {
			continue
		}
		o.Items = append(o.Items, OrderItem{
			Kind:      l.Kind,
			RefID:     l.RefID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return o
}

func (s *service) GuardStatus(ctx context.Context, clientKey string) (guard.Status, error) {
	return s.guard.Status(ctx, clientKey)
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByCampaign(ctx context.Context, campaignID uint) ([]*Order, error) {
	return s.repo.ListByCampaign(ctx, campaignID)
}

func (s *service) MarkSeen(ctx context.Context, id uint) error {
	return s.repo.MarkSeen(ctx, id)
}

func (s *service) Void(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Void"),
		zap.Uint("order_id", id),
	)

	if err := s.repo.Void(ctx, id); err != nil {
		log.Error("failed to void order", zap.Error(err))
		return err
	}
	log.Info("order voided, stock returned")
	return nil
}
