package category

import (
	"context"
	"strings"

	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/policy"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	AddCategory(ctx context.Context, caller role.Caller, title string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

// AddCategory is manager-only; the slug is derived from the title.
func (s *service) AddCategory(ctx context.Context, caller role.Caller, title string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("title", title),
	)

	if err := policy.Enforce(caller, policy.Create, policy.On(policy.Category)); err != nil {
		log.Warn("add category denied", zap.Error(err))
		return nil, err
	}

	title = strings.TrimSpace(title)
	slug := utils.Slugify(title)
	if title == "" || slug == "" {
		return nil, ErrTitleRequired
	}

	c, err := s.repo.AddCategory(ctx, slug, title)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.Uint("category_id", c.ID))
	return c, nil
}
