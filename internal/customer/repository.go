package customer

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Upsert(ctx context.Context, c Customer) error
	UpdateNotes(ctx context.Context, phone, notes string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT phone, first_name, last_name, notes, created_at, updated_at
		FROM customers WHERE phone = $1`, phone,
	).Scan(&c.Phone, &c.FirstName, &c.LastName, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every saved customer with their order aggregates, newest
// first.
func (r *repository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.phone, c.first_name, c.last_name, c.notes, c.created_at, c.updated_at,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(o.total) FILTER (WHERE o.status <> 'VOIDED'), 0) AS total_spent
		FROM customers c
		LEFT JOIN orders o ON o.customer_phone = c.phone
		GROUP BY c.phone
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.Phone, &c.FirstName, &c.LastName, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt, &c.OrderCount, &c.TotalSpent); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) Upsert(ctx context.Context, c Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (phone, first_name, last_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE
		SET first_name = $2, last_name = $3, updated_at = NOW()`,
		c.Phone, c.FirstName, c.LastName,
	)
	return err
}

func (r *repository) UpdateNotes(ctx context.Context, phone, notes string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET notes = $1, updated_at = NOW() WHERE phone = $2",
		notes, phone)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
