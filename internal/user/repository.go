package user

import (
	"context"
	"database/sql"

	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, username, password, role string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password, role FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role)

	return u, err
}

func (r *repository) Create(ctx context.Context, username, password, role string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING id, username, password, role",
		username, password, role,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return u, err
}
