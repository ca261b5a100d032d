package user

import (
	"context"

	"flavis-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, username, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		log.Warn("login: username not found", zap.String("username", username))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.String("username", username))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Username)
	if err != nil {
		log.Error("login: failed to generate jwt", zap.Error(err))
		return "", User{}, err
	}

	return token, u, nil
}
