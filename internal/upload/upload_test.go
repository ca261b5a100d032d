package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir, 1<<20, "http://localhost:8080/")

		url, err := svc.Save(ctx, "image/png", bytes.NewReader([]byte("fake-png-bytes")))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-png-bytes"), data)
	})

	t.Run("RejectsOversize", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir, 16, "http://localhost:8080")

		_, err := svc.Save(ctx, "image/jpeg", bytes.NewReader(make([]byte, 17)))
		assert.ErrorIs(t, err, ErrTooLarge)

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("ExactLimitAllowed", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir, 16, "http://localhost:8080")

		_, err := svc.Save(ctx, "image/jpeg", bytes.NewReader(make([]byte, 16)))
		assert.NoError(t, err)
	})

	t.Run("RejectsUnsupportedType", func(t *testing.T) {
		svc := NewService(t.TempDir(), 1<<20, "http://localhost:8080")

		_, err := svc.Save(ctx, "application/pdf", bytes.NewReader([]byte("%PDF")))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}
