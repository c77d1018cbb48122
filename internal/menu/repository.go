package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"littlelemon-be/internal/db"
	"littlelemon-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pgForeignKeyViolation = "23503"
	pgNumericOverflow     = "22003"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]*MenuItem, error)
	GetByID(ctx context.Context, id uint) (*MenuItem, error)
	Create(ctx context.Context, input MenuItemInput) (*MenuItem, error)
	Update(ctx context.Context, id uint, input MenuItemInput) (*MenuItem, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectMenuItem = `
	SELECT
		m.id,
		m.title,
		m.price,
		m.featured,
		m.category_id,
		c.id,
		c.slug,
		c.title
	FROM menu_items m
	JOIN categories c ON c.id = m.category_id
`

func scanMenuItem(row interface{ Scan(...any) error }) (*MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Price,
		&m.Featured,
		&m.CategoryID,
		&m.Category.ID,
		&m.Category.Slug,
		&m.Category.Title,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func orderClause(o Ordering) (string, error) {
	switch o {
	case OrderByID:
		return "m.id ASC", nil
	case OrderByPrice:
		return "m.price ASC, m.id ASC", nil
	case OrderByPriceDesc:
		return "m.price DESC, m.id ASC", nil
	case OrderByTitle:
		return "m.title ASC, m.id ASC", nil
	case OrderByTitleDesc:
		return "m.title DESC, m.id ASC", nil
	}
	return "", ErrInvalidOrdering
}

func (r *repository) List(ctx context.Context, params ListParams) ([]*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListMenuItems"),
	)

	start := time.Now()

	// ---------- pagination ----------
	limit := defaultLimit
	if params.Limit > 0 {
		limit = params.Limit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	page := 1
	if params.Page > 0 {
		page = params.Page
	}
	offset := (page - 1) * limit

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf("m.title ILIKE $%d", len(args)))
	}
	if params.CategoryID != 0 {
		args = append(args, params.CategoryID)
		where = append(where, fmt.Sprintf("m.category_id = $%d", len(args)))
	}

	orderBy, err := orderClause(params.Ordering)
	if err != nil {
		return nil, err
	}

	query := selectMenuItem
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	items := make([]*MenuItem, 0, limit)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(items)),
		zap.Duration("duration", time.Since(start)),
	)
	return items, nil
}

// GetByID returns (nil, nil) when the item does not exist. It reads through
// the transaction in ctx when there is one.
func (r *repository) GetByID(ctx context.Context, id uint) (*MenuItem, error) {
	row := db.Conn(ctx, r.db).QueryRowContext(ctx, selectMenuItem+" WHERE m.id = $1", id)

	m, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, input MenuItemInput) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateMenuItem"),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (title, price, featured, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, input.Title, input.Price, input.Featured, input.CategoryID).Scan(&id)
	if err != nil {
		if isNumericOverflow(err) {
			log.Warn("menu item price out of range", zap.Stringer("price", input.Price))
			return nil, ErrPriceTooLarge
		}
		log.Error("failed to insert menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Uint("menu_item_id", id))
	return r.GetByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id uint, input MenuItemInput) (*MenuItem, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET title = $1, price = $2, featured = $3, category_id = $4
		WHERE id = $5
	`, input.Title, input.Price, input.Featured, input.CategoryID, id)
	if err != nil {
		if isNumericOverflow(err) {
			return nil, ErrPriceTooLarge
		}
		return nil, fmt.Errorf("update menu item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrMenuItemNotFound
	}

	return r.GetByID(ctx, id)
}

func isNumericOverflow(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgNumericOverflow
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return ErrMenuItemInUse
		}
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
