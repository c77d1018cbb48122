package cart

import (
	"context"

	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/menu"
	"littlelemon-be/internal/policy"
	"littlelemon-be/internal/role"

	"go.uber.org/zap"
)

// Service is the cart ledger. Every operation acts on the caller's own cart.
type Service interface {
	ListLines(ctx context.Context, caller role.Caller) ([]*CartLine, error)
	AddLine(ctx context.Context, caller role.Caller, menuItemID uint, quantity int) (*CartLine, error)
	RemoveLine(ctx context.Context, caller role.Caller, menuItemID uint) error
	Clear(ctx context.Context, caller role.Caller) error
}

type service struct {
	repo     Repository
	menuRepo menu.Repository
}

func NewService(repo Repository, menuRepo menu.Repository) Service {
	return &service{repo: repo, menuRepo: menuRepo}
}

func ownCart(caller role.Caller) policy.Resource {
	return policy.Resource{Kind: policy.Cart, OwnerID: caller.UserID}
}

func (s *service) ListLines(ctx context.Context, caller role.Caller) ([]*CartLine, error) {
	if err := policy.Enforce(caller, policy.Read, ownCart(caller)); err != nil {
		return nil, err
	}
	return s.repo.ListLines(ctx, caller.UserID)
}

func (s *service) AddLine(ctx context.Context, caller role.Caller, menuItemID uint, quantity int) (*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddLine"),
		zap.Uint("menuitem_id", menuItemID),
	)

	if err := policy.Enforce(caller, policy.Create, ownCart(caller)); err != nil {
		log.Warn("add to cart denied", zap.Error(err))
		return nil, err
	}
	if menuItemID == 0 {
		return nil, ErrMenuItemRequired
	}
	if quantity < 1 || quantity > maxQuantity {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		log.Error("failed to load menu item", zap.Error(err))
		return nil, err
	}
	if item == nil {
		return nil, menu.ErrMenuItemNotFound
	}

	existing, err := s.repo.GetLine(ctx, caller.UserID, menuItemID)
	if err != nil {
		log.Error("failed to check existing line", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateItem
	}

	price := LinePrice(quantity, item.Price)
	if price.GreaterThan(MaxLinePrice) {
		log.Info("cart line rejected: price too large", zap.Stringer("price", price))
		return nil, ErrLinePriceTooLarge
	}

	// The unique key still guards the race between the check and the insert.
	line, err := s.repo.CreateLine(ctx, &CartLine{
		UserID:        caller.UserID,
		MenuItemID:    item.ID,
		MenuItemTitle: item.Title,
		Quantity:      quantity,
		UnitPrice:     item.Price,
		Price:         price,
	})
	if err != nil {
		return nil, err
	}

	log.Info("cart line added", zap.Int("quantity", quantity), zap.Stringer("price", line.Price))
	return line, nil
}

func (s *service) RemoveLine(ctx context.Context, caller role.Caller, menuItemID uint) error {
	if err := policy.Enforce(caller, policy.Delete, ownCart(caller)); err != nil {
		return err
	}
	if menuItemID == 0 {
		return ErrMenuItemRequired
	}
	return s.repo.DeleteLine(ctx, caller.UserID, menuItemID)
}

// Clear empties the cart; an already empty cart is not an error.
func (s *service) Clear(ctx context.Context, caller role.Caller) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ClearCart"),
	)

	if err := policy.Enforce(caller, policy.Delete, ownCart(caller)); err != nil {
		return err
	}

	n, err := s.repo.Clear(ctx, caller.UserID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return err
	}

	log.Info("cart cleared", zap.Int64("lines", n))
	return nil
}
