package user

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
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ListByGroup(ctx context.Context, group string) ([]*User, error)
	AddToGroup(ctx context.Context, userID uint, group string) error
	RemoveFromGroup(ctx context.Context, userID uint, group string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectUser = `
	SELECT
		u.id,
		u.username,
		u.email,
		u.password,
		u.is_superuser,
		u.created_at,
		COALESCE(array_agg(g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN user_groups ug ON ug.user_id = u.id
	LEFT JOIN auth_groups g ON g.id = ug.group_id
`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.IsSuperuser,
		&u.CreatedAt,
		pq.Array(&u.Groups),
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
		zap.String("username", username),
	)

	u := User{Username: username, Email: email, Password: passwordHash, Groups: []string{}}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, is_superuser, created_at
	`, username, email, passwordHash).Scan(&u.ID, &u.IsSuperuser, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrUsernameExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return nil, err
	}

	return &u, nil
}

// FindByID returns (nil, nil) when no user has the id.
func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE u.id = $1 GROUP BY u.id", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return u, nil
}

// FindByUsername returns (nil, nil) when no user has the username.
func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE u.username = $1 GROUP BY u.id", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return u, nil
}

func (r *repository) ListByGroup(ctx context.Context, group string) ([]*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByGroup"),
		zap.String("group", group),
	)

	rows, err := r.db.QueryContext(ctx, selectUser+`
		WHERE u.id IN (
			SELECT ug2.user_id
			FROM user_groups ug2
			JOIN auth_groups g2 ON g2.id = ug2.group_id
			WHERE g2.name = $1
		)
		GROUP BY u.id
		ORDER BY u.id ASC
	`, group)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// AddToGroup is idempotent: adding an existing member changes nothing.
func (r *repository) AddToGroup(ctx context.Context, userID uint, group string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_groups (user_id, group_id)
		SELECT $1, g.id FROM auth_groups g WHERE g.name = $2
		ON CONFLICT (user_id, group_id) DO NOTHING
	`, userID, group)
	if err != nil {
		return fmt.Errorf("add user %d to %s: %w", userID, group, err)
	}
	return nil
}

// RemoveFromGroup is idempotent: removing a non-member succeeds.
func (r *repository) RemoveFromGroup(ctx context.Context, userID uint, group string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM user_groups
		WHERE user_id = $1
		  AND group_id = (SELECT id FROM auth_groups WHERE name = $2)
	`, userID, group)
	if err != nil {
		return fmt.Errorf("remove user %d from %s: %w", userID, group, err)
	}
	return nil
}
