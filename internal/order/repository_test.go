package order

import (
	"context"
	"testing"
	"time"

	"flavis-be/internal/draft"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *Order {
	return &Order{
		CampaignID:    7,
		CustomerPhone: "987654321",
		FirstName:     "Lucia",
		LastName:      "Paredes",
		Total:         69,
		ReceiptURL:    "https://cdn/receipts/abc.jpg",
		DeliveryMode:  draft.ModePickup,
		Items: []OrderItem{
			{Kind: draft.LineCookie, RefID: 1, Quantity: 2, UnitPrice: 12},
			{Kind: draft.LinePack, RefID: 3, Quantity: 1, UnitPrice: 45},
		},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		o := testOrder()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE campaigns\s+SET stock_sold = stock_sold \+ \$1`).
			WithArgs(3, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(uint(7), "987654321", "Lucia", "Paredes", 69.0,
				"https://cdn/receipts/abc.jpg", draft.ModePickup,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(42, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(uint(42), draft.LineCookie, uint(1), 2, 12.0, 24.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(uint(42), draft.LinePack, uint(3), 1, 45.0, 45.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		created, err := repo.CreateOrderTx(ctx, o, false)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), created.ID)
		assert.Equal(t, StatusPending, created.Status)
	})

	t.Run("SavesCustomer", func(t *testing.T) {
		o := testOrder()
		o.Items = o.Items[:1]
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE campaigns`).
			WithArgs(2, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(uint(7), "987654321", "Lucia", "Paredes", 69.0,
				"https://cdn/receipts/abc.jpg", draft.ModePickup,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(43, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(uint(43), draft.LineCookie, uint(1), 2, 12.0, 24.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
		mock.ExpectExec(`INSERT INTO customers`).
			WithArgs("987654321", "Lucia", "Paredes").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := repo.CreateOrderTx(ctx, o, true)
		assert.NoError(t, err)
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		o := testOrder()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE campaigns`).
			WithArgs(3, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.CreateOrderTx(ctx, o, false)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByCampaign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	orderRows := sqlmock.NewRows([]string{
		"id", "campaign_id", "customer_phone", "first_name", "last_name", "total",
		"receipt_url", "delivery_mode", "address_street", "address_district",
		"address_reference", "status", "seen", "created_at", "updated_at",
	}).AddRow(42, 7, "987654321", "Lucia", "Paredes", 69.0,
		"https://cdn/r.jpg", "PICKUP", nil, nil, nil, "PENDING", false, now, now)

	mock.ExpectQuery(`SELECT .* FROM orders WHERE campaign_id = \$1`).
		WithArgs(uint(7)).
		WillReturnRows(orderRows)
	mock.ExpectQuery(`SELECT .* FROM order_items WHERE order_id = ANY\(\$1\)`).
		WithArgs(pq.Int64Array{42}).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "kind", "ref_id", "quantity", "unit_price", "subtotal",
		}).AddRow(1, 42, "COOKIE", 1, 2, 12.0, 24.0))

	orders, err := repo.ListByCampaign(context.Background(), 7)
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Nil(t, orders[0].Address)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestRepository_MarkSeen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET seen = TRUE`).
			WithArgs(uint(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkSeen(ctx, 42))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET seen = TRUE`).
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkSeen(ctx, 99), ErrOrderNotFound)
	})
}

func TestRepository_Void(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ReturnsStock", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE orders SET status = 'VOIDED'`).
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows([]string{"campaign_id"}).AddRow(7))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM order_items`).
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3))
		mock.ExpectExec(`UPDATE campaigns\s+SET stock_sold = GREATEST`).
			WithArgs(3, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Void(ctx, 42))
	})

	t.Run("AlreadyVoided", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE orders SET status = 'VOIDED'`).
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows([]string{"campaign_id"}))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Void(ctx, 42), ErrAlreadyVoided)
	})
}
