package menu

import (
	"context"
	"strings"

	"littlelemon-be/internal/category"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/policy"
	"littlelemon-be/internal/role"

	"go.uber.org/zap"
)

type Service interface {
	ListMenuItems(ctx context.Context, params ListParams) ([]*MenuItem, error)
	GetMenuItem(ctx context.Context, id uint) (*MenuItem, error)
	CreateMenuItem(ctx context.Context, caller role.Caller, input MenuItemInput) (*MenuItem, error)
	ReplaceMenuItem(ctx context.Context, caller role.Caller, id uint, input MenuItemInput) (*MenuItem, error)
	PatchMenuItem(ctx context.Context, caller role.Caller, id uint, patch MenuItemPatch) (*MenuItem, error)
	DeleteMenuItem(ctx context.Context, caller role.Caller, id uint) error
}

type service struct {
	repo         Repository
	categoryRepo category.Repository
}

func NewService(repo Repository, categoryRepo category.Repository) Service {
	return &service{repo: repo, categoryRepo: categoryRepo}
}

func (s *service) ListMenuItems(ctx context.Context, params ListParams) ([]*MenuItem, error) {
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.List(ctx, params)
}

func (s *service) GetMenuItem(ctx context.Context, id uint) (*MenuItem, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMenuItemNotFound
	}
	return m, nil
}

func (s *service) CreateMenuItem(ctx context.Context, caller role.Caller, input MenuItemInput) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMenuItem"),
	)

	if err := policy.Enforce(caller, policy.Create, policy.On(policy.MenuItem)); err != nil {
		log.Warn("create menu item denied", zap.Error(err))
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	m, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Uint("menu_item_id", m.ID))
	return m, nil
}

func (s *service) ReplaceMenuItem(ctx context.Context, caller role.Caller, id uint, input MenuItemInput) (*MenuItem, error) {
	if err := policy.Enforce(caller, policy.Update, policy.On(policy.MenuItem)); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) PatchMenuItem(ctx context.Context, caller role.Caller, id uint, patch MenuItemPatch) (*MenuItem, error) {
	if err := policy.Enforce(caller, policy.Update, policy.On(policy.MenuItem)); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	current, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	input := MenuItemInput{
		Title:      current.Title,
		Price:      current.Price,
		Featured:   current.Featured,
		CategoryID: current.CategoryID,
	}
	if patch.Title != nil {
		input.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Price != nil {
		input.Price = *patch.Price
	}
	if patch.Featured != nil {
		input.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		input.CategoryID = *patch.CategoryID
	}

	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteMenuItem(ctx context.Context, caller role.Caller, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteMenuItem"),
		zap.Uint("menu_item_id", id),
	)

	if err := policy.Enforce(caller, policy.Delete, policy.On(policy.MenuItem)); err != nil {
		log.Warn("delete menu item denied", zap.Error(err))
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete menu item", zap.Error(err))
		return err
	}

	log.Info("menu item deleted")
	return nil
}

func (s *service) validate(ctx context.Context, input MenuItemInput) error {
	if input.Title == "" {
		return ErrTitleRequired
	}
	if !input.Price.IsPositive() {
		return ErrInvalidPrice
	}
	// Stored with two decimals, so 9999.995 lands on 10000.00.
	if input.Price.Round(2).GreaterThan(MaxPrice) {
		return ErrPriceTooLarge
	}
	if input.CategoryID == 0 {
		return ErrInvalidCategory
	}

	c, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrInvalidCategory
	}
	return nil
}
