package packages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]Pack, error)
	GetByID(ctx context.Context, id uint) (*Pack, error)
	Create(ctx context.Context, input PackInput) (*Pack, error)
	Update(ctx context.Context, id uint, input PackInput) (*Pack, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const packColumns = "id, name, description, price, image_url, active, cookie_ids, created_at, updated_at"

func scanPack(row interface{ Scan(...any) error }) (*Pack, error) {
	var p Pack
	var ids pq.Int64Array
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Active, &ids, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CookieIDs = make([]uint, 0, len(ids))
	for _, id := range ids {
		p.CookieIDs = append(p.CookieIDs, uint(id))
	}
	return &p, nil
}

func cookieIDsArg(ids []uint) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func (r *repository) List(ctx context.Context, onlyActive bool) ([]Pack, error) {
	query := "SELECT " + packColumns + " FROM packs"
	if onlyActive {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	defer rows.Close()

	var packs []Pack
	for rows.Next() {
		p, err := scanPack(rows)
		if err != nil {
			return nil, err
		}
		packs = append(packs, *p)
	}
	return packs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Pack, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+packColumns+" FROM packs WHERE id = $1", id)
	p, err := scanPack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, input PackInput) (*Pack, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO packs (name, description, price, image_url, active, cookie_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+packColumns,
		input.Name, input.Description, input.Price, input.ImageURL,
		input.Active, cookieIDsArg(input.CookieIDs),
	)
	return scanPack(row)
}

func (r *repository) Update(ctx context.Context, id uint, input PackInput) (*Pack, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE packs
		SET name = $1, description = $2, price = $3, image_url = $4, active = $5,
			cookie_ids = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+packColumns,
		input.Name, input.Description, input.Price, input.ImageURL,
		input.Active, cookieIDsArg(input.CookieIDs), id,
	)
	p, err := scanPack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackNotFound
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM packs WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPackNotFound
	}
	return nil
}
