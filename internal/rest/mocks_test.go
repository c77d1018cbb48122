package rest

import (
	"context"

	"littlelemon-be/internal/cart"
	"littlelemon-be/internal/category"
	"littlelemon-be/internal/menu"
	"littlelemon-be/internal/order"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockMenuService struct{ mock.Mock }

func (m *MockMenuService) ListMenuItems(ctx context.Context, params menu.ListParams) ([]*menu.MenuItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) GetMenuItem(ctx context.Context, id uint) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) CreateMenuItem(ctx context.Context, c role.Caller, in menu.MenuItemInput) (*menu.MenuItem, error) {
	args := m.Called(ctx, c, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) ReplaceMenuItem(ctx context.Context, c role.Caller, id uint, in menu.MenuItemInput) (*menu.MenuItem, error) {
	args := m.Called(ctx, c, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) PatchMenuItem(ctx context.Context, c role.Caller, id uint, p menu.MenuItemPatch) (*menu.MenuItem, error) {
	args := m.Called(ctx, c, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) DeleteMenuItem(ctx context.Context, c role.Caller, id uint) error {
	return m.Called(ctx, c, id).Error(0)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) AddCategory(ctx context.Context, c role.Caller, title string) (*category.Category, error) {
	args := m.Called(ctx, c, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

type MockMembershipService struct{ mock.Mock }

func (m *MockMembershipService) ListMembers(ctx context.Context, c role.Caller, r role.Role) ([]*user.User, error) {
	args := m.Called(ctx, c, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockMembershipService) AddToRole(ctx context.Context, c role.Caller, r role.Role, username string) (*user.User, error) {
	args := m.Called(ctx, c, r, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockMembershipService) RemoveFromRole(ctx context.Context, c role.Caller, r role.Role, userID uint) (*user.User, error) {
	args := m.Called(ctx, c, r, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) ListLines(ctx context.Context, c role.Caller) ([]*cart.CartLine, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartLine), args.Error(1)
}

func (m *MockCartService) AddLine(ctx context.Context, c role.Caller, menuItemID uint, quantity int) (*cart.CartLine, error) {
	args := m.Called(ctx, c, menuItemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartService) RemoveLine(ctx context.Context, c role.Caller, menuItemID uint) error {
	return m.Called(ctx, c, menuItemID).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, c role.Caller) error {
	return m.Called(ctx, c).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) ListOrders(ctx context.Context, c role.Caller, params order.ListParams) ([]*order.Order, error) {
	args := m.Called(ctx, c, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, c role.Caller, id uint) (*order.Order, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, c role.Caller) (*order.Order, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, c role.Caller, id uint, upd order.Update) (*order.Order, error) {
	args := m.Called(ctx, c, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) AssignDeliveryCrew(ctx context.Context, c role.Caller, id, crewID uint) (*order.Order, error) {
	args := m.Called(ctx, c, id, crewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, c role.Caller, id uint, status bool) (*order.Order, error) {
	args := m.Called(ctx, c, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOwnOrder(ctx context.Context, c role.Caller, id uint, status bool) (*order.Order, error) {
	args := m.Called(ctx, c, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, c role.Caller, id uint) error {
	return m.Called(ctx, c, id).Error(0)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
