package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flavis-be/internal/draft"

	"github.com/lib/pq"
)

type Repository interface {
	// CreateOrderTx atomically claims campaign stock, inserts the order and
	// its items, and optionally saves the customer. If the campaign cannot
	// cover the ordered quantity the whole transaction rolls back with
	// ErrInsufficientStock.
	CreateOrderTx(ctx context.Context, o *Order, saveCustomer bool) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	MarkSeen(ctx context.Context, id uint) error
	// Void cancels an order and returns its units to the campaign.
	Void(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, saveCustomer bool) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	quantity := 0
	for _, item := range o.Items {
		quantity += item.Quantity
	}

	// The stock claim is the gate: a concurrent order that would oversell
	// the campaign fails here and nothing else is written.
	res, err := tx.ExecContext(ctx, `
		UPDATE campaigns
		SET stock_sold = stock_sold + $1, updated_at = NOW()
		WHERE id = $2 AND active = TRUE AND stock_sold + $1 <= stock_cap`,
		quantity, o.CampaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("claim stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrInsufficientStock
	}

	var street, district, reference sql.NullString
	if o.Address != nil {
		street = sql.NullString{String: o.Address.Street, Valid: true}
		district = sql.NullString{String: o.Address.District, Valid: true}
		reference = sql.NullString{String: o.Address.Reference, Valid: true}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders
			(campaign_id, customer_phone, first_name, last_name, total, receipt_url,
			 delivery_mode, address_street, address_district, address_reference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'PENDING')
		RETURNING id, created_at, updated_at`,
		o.CampaignID, o.CustomerPhone, o.FirstName, o.LastName, o.Total, o.ReceiptURL,
		o.DeliveryMode, street, district, reference,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	o.Status = StatusPending

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		item.Subtotal = item.UnitPrice * float64(item.Quantity)
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, kind, ref_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			o.ID, item.Kind, item.RefID, item.Quantity, item.UnitPrice, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if saveCustomer {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO customers (phone, first_name, last_name)
			VALUES ($1, $2, $3)
			ON CONFLICT (phone) DO UPDATE
			SET first_name = $2, last_name = $3, updated_at = NOW()`,
			o.CustomerPhone, o.FirstName, o.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("save customer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}
	return o, nil
}

const orderColumns = `id, campaign_id, customer_phone, first_name, last_name, total,
	receipt_url, delivery_mode, address_street, address_district, address_reference,
	status, seen, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var street, district, reference sql.NullString
	err := row.Scan(
		&o.ID, &o.CampaignID, &o.CustomerPhone, &o.FirstName, &o.LastName, &o.Total,
		&o.ReceiptURL, &o.DeliveryMode, &street, &district, &reference,
		&o.Status, &o.Seen, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if street.Valid {
		o.Address = &draft.Address{
			Street:    street.String,
			District:  district.String,
			Reference: reference.String,
		}
	}
	return &o, nil
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, r.attachItems(ctx, orders)
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make(pq.Int64Array, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, kind, ref_id, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Kind, &item.RefID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) List(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID uint) ([]*Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE campaign_id = $1 ORDER BY created_at DESC",
		campaignID)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	orders, err := r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *repository) MarkSeen(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET seen = TRUE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Void(ctx context.Context, id uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin void tx: %w", err)
	}
	defer tx.Rollback()

	var campaignID uint
	err = tx.QueryRowContext(ctx, `
		UPDATE orders SET status = 'VOIDED', updated_at = NOW()
		WHERE id = $1 AND status <> 'VOIDED'
		RETURNING campaign_id`, id,
	).Scan(&campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish missing from already voided.
		var exists bool
		if qErr := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)", id).Scan(&exists); qErr == nil && exists {
			return ErrAlreadyVoided
		}
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("void order: %w", err)
	}

	var quantity int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity), 0) FROM order_items WHERE order_id = $1", id,
	).Scan(&quantity)
	if err != nil {
		return fmt.Errorf("sum voided items: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE campaigns
		SET stock_sold = GREATEST(stock_sold - $1, 0), updated_at = NOW()
		WHERE id = $2`,
		quantity, campaignID,
	)
	if err != nil {
		return fmt.Errorf("return stock: %w", err)
	}

	return tx.Commit()
}
