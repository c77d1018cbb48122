package menu

import (
	"context"
	"testing"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/category"
	"littlelemon-be/internal/role"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, params ListParams) ([]*MenuItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*MenuItem), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input MenuItemInput) (*MenuItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input MenuItemInput) (*MenuItem, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MenuItem), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetCategories(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) AddCategory(ctx context.Context, slug, title string) (*category.Category, error) {
	args := m.Called(ctx, slug, title)
	return args.Get(0).(*category.Category), args.Error(1)
}

var (
	managerCaller  = role.NewCaller(1, role.Resolve(role.Subject{Memberships: []role.Role{role.Manager}}))
	crewCaller     = role.NewCaller(2, role.Resolve(role.Subject{Memberships: []role.Role{role.DeliveryCrew}}))
	customerCaller = role.NewCaller(3, role.Resolve(role.Subject{}))
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_CreateMenuItem(t *testing.T) {
	input := MenuItemInput{Title: " Lemon Dessert ", Price: price("5.00"), CategoryID: 4}

	t.Run("Manager creates", func(t *testing.T) {
		repo, cats := new(MockRepository), new(MockCategoryRepository)
		svc := NewService(repo, cats)

		cats.On("GetByID", mock.Anything, uint(4)).Return(&category.Category{ID: 4}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(in MenuItemInput) bool {
			return in.Title == "Lemon Dessert"
		})).Return(&MenuItem{ID: 1, Title: "Lemon Dessert"}, nil)

		m, err := svc.CreateMenuItem(context.Background(), managerCaller, input)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), m.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Non managers are refused regardless of role", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		_, err := svc.CreateMenuItem(context.Background(), crewCaller, input)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		_, err = svc.CreateMenuItem(context.Background(), customerCaller, input)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		_, err = svc.CreateMenuItem(context.Background(), role.Anonymous(), input)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation", func(t *testing.T) {
		cats := new(MockCategoryRepository)
		svc := NewService(new(MockRepository), cats)

		_, err := svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Price: price("1"), CategoryID: 4})
		assert.ErrorIs(t, err, ErrTitleRequired)

		_, err = svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Title: "x", Price: price("0"), CategoryID: 4})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Title: "x", Price: price("-2.5"), CategoryID: 4})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Title: "x", Price: price("10000"), CategoryID: 4})
		assert.EqualError(t, err, ErrPriceTooLarge.Error())

		_, err = svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Title: "x", Price: price("9999.995"), CategoryID: 4})
		assert.EqualError(t, err, ErrPriceTooLarge.Error())

		cats.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)
		_, err = svc.CreateMenuItem(context.Background(), managerCaller, MenuItemInput{Title: "x", Price: price("1"), CategoryID: 99})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestService_GetMenuItem(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCategoryRepository))

	repo.On("GetByID", mock.Anything, uint(5)).Return(nil, nil)

	_, err := svc.GetMenuItem(context.Background(), 5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_PatchMenuItem(t *testing.T) {
	t.Run("Only supplied fields change", func(t *testing.T) {
		repo, cats := new(MockRepository), new(MockCategoryRepository)
		svc := NewService(repo, cats)

		repo.On("GetByID", mock.Anything, uint(5)).
			Return(&MenuItem{ID: 5, Title: "Pasta", Price: price("9.00"), CategoryID: 2}, nil)
		cats.On("GetByID", mock.Anything, uint(2)).Return(&category.Category{ID: 2}, nil)

		featured := true
		repo.On("Update", mock.Anything, uint(5), mock.MatchedBy(func(in MenuItemInput) bool {
			return in.Title == "Pasta" && in.Price.Equal(price("9.00")) && in.Featured && in.CategoryID == 2
		})).Return(&MenuItem{ID: 5, Title: "Pasta", Featured: true}, nil)

		m, err := svc.PatchMenuItem(context.Background(), managerCaller, 5, MenuItemPatch{Featured: &featured})
		assert.NoError(t, err)
		assert.True(t, m.Featured)
		repo.AssertExpectations(t)
	})

	t.Run("Empty patch", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		_, err := svc.PatchMenuItem(context.Background(), managerCaller, 5, MenuItemPatch{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("Customer forbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCategoryRepository))

		title := "x"
		_, err := svc.PatchMenuItem(context.Background(), customerCaller, 5, MenuItemPatch{Title: &title})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestService_ReplaceMenuItem(t *testing.T) {
	repo, cats := new(MockRepository), new(MockCategoryRepository)
	svc := NewService(repo, cats)

	input := MenuItemInput{Title: "Soup", Price: price("4.50"), CategoryID: 1}
	cats.On("GetByID", mock.Anything, uint(1)).Return(&category.Category{ID: 1}, nil)
	repo.On("Update", mock.Anything, uint(8), input).Return(nil, ErrMenuItemNotFound)

	_, err := svc.ReplaceMenuItem(context.Background(), managerCaller, 8, input)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_DeleteMenuItem(t *testing.T) {
	t.Run("Manager deletes", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		repo.On("Delete", mock.Anything, uint(3)).Return(nil)

		assert.NoError(t, svc.DeleteMenuItem(context.Background(), managerCaller, 3))
	})

	t.Run("Crew forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCategoryRepository))

		assert.ErrorIs(t, svc.DeleteMenuItem(context.Background(), crewCaller, 3), apperr.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_ListMenuItems(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockCategoryRepository))

	repo.On("List", mock.Anything, ListParams{Search: "salad"}).Return([]*MenuItem{{ID: 1}}, nil)

	items, err := svc.ListMenuItems(context.Background(), ListParams{Search: "  salad "})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
