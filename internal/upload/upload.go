package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flavis-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTooLarge        = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Service interface {
	Save(ctx context.Context, contentType string, r io.Reader) (string, error)
}

type service struct {
	dir      string
	maxBytes int64
	baseURL  string
}

func NewService(dir string, maxBytes int64, baseURL string) Service {
	return &service{dir: dir, maxBytes: maxBytes, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save writes the file under a random name and returns its public URL.
// The reader is capped at maxBytes; anything longer is rejected, not truncated.
func (s *service) Save(ctx context.Context, contentType string, r io.Reader) (string, error) {
	log := logger.FromCtx(ctx)

	ext, ok := extByType[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Error("upload: mkdir", zap.String("dir", s.dir), zap.Error(err))
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		log.Error("upload: create file", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	url := s.baseURL + "/uploads/" + name
	log.Info("upload: stored file",
		zap.String("name", name),
		zap.Int64("bytes", n),
	)
	return url, nil
}
