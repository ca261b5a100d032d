package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActive(ctx context.Context) ([]Cookie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Cookie), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Cookie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Cookie), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Cookie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cookie), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input CookieInput) (*Cookie, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cookie), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input CookieInput) (*Cookie, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cookie), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		input := CookieInput{Name: "Red Velvet", Price: 12, Active: true}
		repo.On("Create", ctx, input).Return(&Cookie{ID: 1, Name: "Red Velvet", Price: 12}, nil)

		svc := NewService(repo)
		c, err := svc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), c.ID)
		repo.AssertExpectations(t)
	})

	t.Run("EmptyName", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CookieInput{Name: "   ", Price: 12})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CookieInput{Name: "Brownie", Price: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidInputShortCircuits", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Update(ctx, 1, CookieInput{Name: "", Price: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("PassesThrough", func(t *testing.T) {
		repo := new(MockRepository)
		input := CookieInput{Name: "Brownie", Price: 10}
		repo.On("Update", ctx, uint(1), input).Return(&Cookie{ID: 1, Name: "Brownie"}, nil)

		svc := NewService(repo)
		c, err := svc.Update(ctx, 1, input)
		assert.NoError(t, err)
		assert.Equal(t, "Brownie", c.Name)
	})
}
