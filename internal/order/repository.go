package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"littlelemon-be/internal/db"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/policy"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Repository persists orders and their lines. Methods run on the
// transaction in ctx when there is one.
type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	// Lock reads the order header and holds its row lock until the
	// surrounding transaction ends. Items are not loaded.
	Lock(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, scope policy.Scope, params ListParams) ([]*Order, error)
	SetDeliveryCrew(ctx context.Context, id, crewID uint) error
	SetStatus(ctx context.Context, id uint, status bool) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrder = `
	SELECT id, user_id, delivery_crew_id, status, total, date
	FROM orders
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var (
		o    Order
		crew sql.NullInt64
	)
	if err := row.Scan(&o.ID, &o.UserID, &crew, &o.Status, &o.Total, &o.Date); err != nil {
		return nil, err
	}
	if crew.Valid {
		id := uint(crew.Int64)
		o.DeliveryCrewID = &id
	}
	o.Items = []*OrderItem{}
	return &o, nil
}

// Create inserts the order and every item. Callers wrap it in a
// transaction together with clearing the cart.
func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
	)

	conn := db.Conn(ctx, r.db)
	created := *o

	err := conn.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, total, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, o.UserID, o.Status, o.Total, o.Date).Scan(&created.ID)
	if err != nil {
		if isNumericOverflow(err) {
			log.Warn("order total out of range", zap.Stringer("total", o.Total))
			return nil, ErrTotalTooLarge
		}
		log.Error("failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created.Items = make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		it := *item
		it.OrderID = created.ID

		err := conn.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menuitem_id, quantity, unit_price, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, it.OrderID, it.MenuItemID, it.Quantity, it.UnitPrice, it.Price).Scan(&it.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("order_id", created.ID),
				zap.Uint("menuitem_id", it.MenuItemID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		created.Items = append(created.Items, &it)
	}

	log.Info("order inserted", zap.Uint("order_id", created.ID), zap.Int("items", len(created.Items)))
	return &created, nil
}

func isNumericOverflow(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgNumericOverflow
}

// GetByID returns (nil, nil) when the order does not exist.
func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(db.Conn(ctx, r.db).QueryRowContext(ctx, selectOrder+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Lock returns (nil, nil) when the order does not exist.
func (r *repository) Lock(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(db.Conn(ctx, r.db).QueryRowContext(ctx, selectOrder+" WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock order %d: %w", id, err)
	}
	return o, nil
}

func scopeClause(scope policy.Scope, args []any) (string, []any) {
	switch scope.Kind {
	case policy.ScopeAll:
		return "", args
	case policy.ScopeAssignedTo:
		args = append(args, scope.UserID)
		return fmt.Sprintf("delivery_crew_id = $%d", len(args)), args
	case policy.ScopePlacedBy:
		args = append(args, scope.UserID)
		return fmt.Sprintf("user_id = $%d", len(args)), args
	}
	return "FALSE", args
}

func (r *repository) List(ctx context.Context, scope policy.Scope, params ListParams) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
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

	clause, args := scopeClause(scope, args)
	if clause != "" {
		where = append(where, clause)
	}
	if params.State != nil {
		args = append(args, *params.State == StateCompleted)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := selectOrder
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	log.Info("query success",
		zap.Int("rows", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

// attachItems loads the items of all given orders in one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menuitem_id, m.title, oi.quantity, oi.unit_price, oi.price
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menuitem_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id ASC
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.MenuItemTitle, &it.Quantity, &it.UnitPrice, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

func (r *repository) SetDeliveryCrew(ctx context.Context, id, crewID uint) error {
	return r.updateOne(ctx, `UPDATE orders SET delivery_crew_id = $1 WHERE id = $2`, crewID, id)
}

func (r *repository) SetStatus(ctx context.Context, id uint, status bool) error {
	return r.updateOne(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
}

// Delete removes the order; order_items go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.updateOne(ctx, `DELETE FROM orders WHERE id = $1`, id)
}

func (r *repository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
