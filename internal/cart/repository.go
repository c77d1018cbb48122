package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"littlelemon-be/internal/db"
	"littlelemon-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository stores cart lines. Every method runs on the transaction carried
// by ctx when there is one.
type Repository interface {
	ListLines(ctx context.Context, userID uint) ([]*CartLine, error)
	// LockLines is ListLines with the rows locked until the transaction ends.
	LockLines(ctx context.Context, userID uint) ([]*CartLine, error)
	GetLine(ctx context.Context, userID, menuItemID uint) (*CartLine, error)
	CreateLine(ctx context.Context, line *CartLine) (*CartLine, error)
	DeleteLine(ctx context.Context, userID, menuItemID uint) error
	// DeleteLines removes only the given lines of the customer. Lines added
	// after ids were read are left in place.
	DeleteLines(ctx context.Context, userID uint, ids []uint) (int64, error)
	Clear(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectLine = `
	SELECT
		c.id,
		c.user_id,
		c.menuitem_id,
		m.title,
		c.quantity,
		c.unit_price,
		c.price,
		c.created_at
	FROM carts c
	JOIN menu_items m ON m.id = c.menuitem_id
`

func scanLine(row interface{ Scan(...any) error }) (*CartLine, error) {
	var l CartLine
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.MenuItemID,
		&l.MenuItemTitle,
		&l.Quantity,
		&l.UnitPrice,
		&l.Price,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListLines(ctx context.Context, userID uint) ([]*CartLine, error) {
	return r.queryLines(ctx, "ListLines", selectLine+" WHERE c.user_id = $1 ORDER BY c.id ASC", userID)
}

func (r *repository) LockLines(ctx context.Context, userID uint) ([]*CartLine, error) {
	return r.queryLines(ctx, "LockLines", selectLine+" WHERE c.user_id = $1 ORDER BY c.id ASC FOR UPDATE OF c", userID)
}

func (r *repository) queryLines(ctx context.Context, method, query string, userID uint) ([]*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	lines := []*CartLine{}
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(lines)),
		zap.Duration("duration", time.Since(start)),
	)
	return lines, nil
}

// GetLine returns (nil, nil) when the customer has no line for the item.
func (r *repository) GetLine(ctx context.Context, userID, menuItemID uint) (*CartLine, error) {
	row := db.Conn(ctx, r.db).QueryRowContext(ctx,
		selectLine+" WHERE c.user_id = $1 AND c.menuitem_id = $2", userID, menuItemID)

	l, err := scanLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return l, nil
}

// CreateLine inserts the line. A second line for the same (user, item)
// violates carts_user_menuitem_key and comes back as ErrDuplicateItem.
func (r *repository) CreateLine(ctx context.Context, line *CartLine) (*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateLine"),
		zap.Uint("menuitem_id", line.MenuItemID),
	)

	created := *line
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO carts (user_id, menuitem_id, quantity, unit_price, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, line.UserID, line.MenuItemID, line.Quantity, line.UnitPrice, line.Price).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				log.Warn("duplicate cart line")
				return nil, ErrDuplicateItem
			case pgNumericOverflow:
				log.Warn("cart line price out of range", zap.Stringer("price", line.Price))
				return nil, ErrLinePriceTooLarge
			}
		}
		log.Error("failed to insert cart line", zap.Error(err))
		return nil, err
	}

	return &created, nil
}

func (r *repository) DeleteLine(ctx context.Context, userID, menuItemID uint) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM carts WHERE user_id = $1 AND menuitem_id = $2`, userID, menuItemID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *repository) DeleteLines(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	arr := make([]int64, 0, len(ids))
	for _, id := range ids {
		arr = append(arr, int64(id))
	}

	res, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM carts WHERE user_id = $1 AND id = ANY($2)`, userID, pq.Array(arr))
	if err != nil {
		return 0, fmt.Errorf("delete cart lines: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every line of the customer and reports how many there were.
func (r *repository) Clear(ctx context.Context, userID uint) (int64, error) {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return res.RowsAffected()
}
