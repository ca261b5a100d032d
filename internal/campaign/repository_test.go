package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var campaignCols = []string{
	"id", "name", "active", "opens_at", "closes_at", "delivery_date",
	"delivery_slot", "stock_sold", "stock_cap", "qr_url", "created_at", "updated_at",
}

func campaignRow(id uint, active bool, sold, cap int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(campaignCols).AddRow(
		id, "Drop semana 12", active, now.Add(-24*time.Hour), now.Add(24*time.Hour),
		now.Add(72*time.Hour), "11am - 1pm", sold, cap, "https://cdn/qr.png", now, now,
	)
}

func TestRepository_GetLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM campaigns ORDER BY created_at DESC LIMIT 1`).
			WillReturnRows(campaignRow(7, true, 40, 100))

		c, err := repo.GetLatest(ctx)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), c.ID)
		assert.Equal(t, 40, c.StockSold)
	})

	t.Run("NoRows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM campaigns ORDER BY created_at DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows(campaignCols))

		_, err := repo.GetLatest(ctx)
		assert.ErrorIs(t, err, ErrNoActive)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM campaigns`).
			WillReturnError(errors.New("db error"))

		_, err := repo.GetLatest(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoActive)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM campaigns WHERE id = \$1`).
			WithArgs(uint(3)).
			WillReturnRows(campaignRow(3, true, 0, 50))

		c, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), c.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM campaigns WHERE id = \$1`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows(campaignCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	opens := time.Now()
	closes := opens.Add(48 * time.Hour)
	delivery := opens.Add(96 * time.Hour)

	mock.ExpectQuery(`INSERT INTO campaigns`).
		WithArgs("Drop semana 13", opens, closes, delivery, "11am - 1pm", 120, "https://cdn/qr.png").
		WillReturnRows(campaignRow(8, true, 0, 120))

	c, err := repo.Create(ctx, CreateInput{
		Name:         "Drop semana 13",
		OpensAt:      opens,
		ClosesAt:     closes,
		DeliveryDate: delivery,
		DeliverySlot: "11am - 1pm",
		StockCap:     120,
		QRURL:        "https://cdn/qr.png",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(8), c.ID)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ForceClose", func(t *testing.T) {
		active := false
		mock.ExpectQuery(`UPDATE campaigns SET active = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING`).
			WithArgs(false, uint(7)).
			WillReturnRows(campaignRow(7, false, 40, 100))

		c, err := repo.Update(ctx, 7, UpdateInput{Active: &active})
		assert.NoError(t, err)
		assert.False(t, c.Active)
	})

	t.Run("NoFields", func(t *testing.T) {
		_, err := repo.Update(ctx, 7, UpdateInput{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("NotFound", func(t *testing.T) {
		cap := 90
		mock.ExpectQuery(`UPDATE campaigns SET stock_cap = \$1, updated_at = NOW\(\)`).
			WithArgs(90, uint(99)).
			WillReturnRows(sqlmock.NewRows(campaignCols))

		_, err := repo.Update(ctx, 99, UpdateInput{StockCap: &cap})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
