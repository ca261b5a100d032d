package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Repository interface {
	GetLatest(ctx context.Context) (*Campaign, error)
	GetByID(ctx context.Context, id uint) (*Campaign, error)
	List(ctx context.Context) ([]*Campaign, error)
	Create(ctx context.Context, input CreateInput) (*Campaign, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*Campaign, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const campaignColumns = `id, name, active, opens_at, closes_at, delivery_date,
	delivery_slot, stock_sold, stock_cap, qr_url, created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*Campaign, error) {
	var c Campaign
	err := row.Scan(
		&c.ID, &c.Name, &c.Active, &c.OpensAt, &c.ClosesAt, &c.DeliveryDate,
		&c.DeliverySlot, &c.StockSold, &c.StockCap, &c.QRURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetLatest returns the most recently created campaign. The caller derives
// availability from it; absence means no campaign has ever been set up.
func (r *repository) GetLatest(ctx context.Context) (*Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns ORDER BY created_at DESC LIMIT 1")
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActive
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns WHERE id = $1", id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]*Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CreateInput) (*Campaign, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO campaigns
			(name, active, opens_at, closes_at, delivery_date, delivery_slot, stock_sold, stock_cap, qr_url)
		VALUES ($1, TRUE, $2, $3, $4, $5, 0, $6, $7)
		RETURNING `+campaignColumns,
		input.Name, input.OpensAt, input.ClosesAt, input.DeliveryDate,
		input.DeliverySlot, input.StockCap, input.QRURL,
	)
	return scanCampaign(row)
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (*Campaign, error) {
	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if input.Name != nil {
		sets = append(sets, "name = "+arg(*input.Name))
	}
	if input.Active != nil {
		sets = append(sets, "active = "+arg(*input.Active))
	}
	if input.OpensAt != nil {
		sets = append(sets, "opens_at = "+arg(*input.OpensAt))
	}
	if input.ClosesAt != nil {
		sets = append(sets, "closes_at = "+arg(*input.ClosesAt))
	}
	if input.DeliveryDate != nil {
		sets = append(sets, "delivery_date = "+arg(*input.DeliveryDate))
	}
	if input.DeliverySlot != nil {
		sets = append(sets, "delivery_slot = "+arg(*input.DeliverySlot))
	}
	if input.StockCap != nil {
		sets = append(sets, "stock_cap = "+arg(*input.StockCap))
	}
	if input.QRURL != nil {
		sets = append(sets, "qr_url = "+arg(*input.QRURL))
	}
	if len(sets) == 0 {
		return nil, ErrInvalidInput
	}
	sets = append(sets, "updated_at = NOW()")

	query := "UPDATE campaigns SET " + strings.Join(sets, ", ") +
		" WHERE id = " + arg(id) + " RETURNING " + campaignColumns

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}
