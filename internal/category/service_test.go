package category

import (
	"context"
	"errors"
	"testing"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCategories(ctx context.Context) ([]*Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) AddCategory(ctx context.Context, slug, title string) (*Category, error) {
	args := m.Called(ctx, slug, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

var (
	managerCaller  = role.NewCaller(1, role.Resolve(role.Subject{Memberships: []role.Role{role.Manager}}))
	customerCaller = role.NewCaller(2, role.Resolve(role.Subject{}))
)

func TestService_GetCategories(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetCategories", mock.Anything).Return([]*Category{{ID: 1, Slug: "main", Title: "Main"}}, nil)

		res, err := svc.GetCategories(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Repo error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetCategories", mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.GetCategories(context.Background())
		assert.Error(t, err)
	})
}

func TestService_AddCategory(t *testing.T) {
	t.Run("Manager creates with slug", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("AddCategory", mock.Anything, "main-course", "Main Course").
			Return(&Category{ID: 3, Slug: "main-course", Title: "Main Course"}, nil)

		c, err := svc.AddCategory(context.Background(), managerCaller, " Main Course ")
		assert.NoError(t, err)
		assert.Equal(t, uint(3), c.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Customer forbidden", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.AddCategory(context.Background(), customerCaller, "Main")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		mockRepo.AssertNotCalled(t, "AddCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Anonymous unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.AddCategory(context.Background(), role.Anonymous(), "Main")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("Blank title", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.AddCategory(context.Background(), managerCaller, "  !! ")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})
}
