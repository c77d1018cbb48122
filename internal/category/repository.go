package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"littlelemon-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	AddCategory(ctx context.Context, slug, title string) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, slug, title
		FROM categories
		ORDER BY title ASC
	`)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

// GetByID returns (nil, nil) when the category does not exist.
func (r *repository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Slug, &c.Title)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &c, nil
}

func (r *repository) AddCategory(ctx context.Context, slug, title string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddCategory"),
		zap.String("slug", slug),
	)

	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (slug, title)
		VALUES ($1, $2)
		RETURNING id, slug, title
	`, slug, title).Scan(&c.ID, &c.Slug, &c.Title)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Warn("duplicate category slug")
			return nil, ErrSlugExists
		}
		log.Error("failed to insert category", zap.Error(err))
		return nil, err
	}

	return &c, nil
}
