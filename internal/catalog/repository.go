package catalog

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	ListActive(ctx context.Context) ([]Cookie, error)
	List(ctx context.Context) ([]Cookie, error)
	GetByID(ctx context.Context, id uint) (*Cookie, error)
	Create(ctx context.Context, input CookieInput) (*Cookie, error)
	Update(ctx context.Context, id uint, input CookieInput) (*Cookie, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cookieColumns = "id, name, description, price, image_url, active, created_at, updated_at"

func scanCookie(row interface{ Scan(...any) error }) (*Cookie, error) {
	var c Cookie
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.ImageURL,
		&c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) list(ctx context.Context, query string) ([]Cookie, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		c, err := scanCookie(rows)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, *c)
	}
	return cookies, rows.Err()
}

func (r *repository) ListActive(ctx context.Context) ([]Cookie, error) {
	return r.list(ctx, "SELECT "+cookieColumns+" FROM cookies WHERE active = TRUE ORDER BY id")
}

func (r *repository) List(ctx context.Context) ([]Cookie, error) {
	return r.list(ctx, "SELECT "+cookieColumns+" FROM cookies ORDER BY id")
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Cookie, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+cookieColumns+" FROM cookies WHERE id = $1", id)
	c, err := scanCookie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, input CookieInput) (*Cookie, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO cookies (name, description, price, image_url, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+cookieColumns,
		input.Name, input.Description, input.Price, input.ImageURL, input.Active,
	)
	return scanCookie(row)
}

func (r *repository) Update(ctx context.Context, id uint, input CookieInput) (*Cookie, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cookies
		SET name = $1, description = $2, price = $3, image_url = $4, active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+cookieColumns,
		input.Name, input.Description, input.Price, input.ImageURL, input.Active, id,
	)
	c, err := scanCookie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *repository) SetActive(ctx context.Context, id uint, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cookies SET active = $1, updated_at = NOW() WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cookies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
