// Package membership adds and removes users from the Manager and
// Delivery-crew role groups. Only managers may call it.
package membership

import (
	"context"
	"strings"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/policy"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/user"

	"go.uber.org/zap"
)

var (
	ErrUsernameRequired = apperr.BadRequest("username is required")
	ErrUnknownGroup     = apperr.NotFound("no such group")
)

type Service interface {
	ListMembers(ctx context.Context, caller role.Caller, r role.Role) ([]*user.User, error)
	AddToRole(ctx context.Context, caller role.Caller, r role.Role, username string) (*user.User, error)
	RemoveFromRole(ctx context.Context, caller role.Caller, r role.Role, userID uint) (*user.User, error)
}

type service struct {
	users user.Repository
}

func NewService(users user.Repository) Service {
	return &service{users: users}
}

// groupOf resolves the storage group and the policy resource for a role.
func groupOf(r role.Role) (string, policy.Resource, error) {
	group, ok := user.GroupFor(r)
	if !ok {
		return "", policy.Resource{}, ErrUnknownGroup
	}
	if r == role.Manager {
		return group, policy.On(policy.ManagerGroup), nil
	}
	return group, policy.On(policy.DeliveryCrewGroup), nil
}

func (s *service) ListMembers(ctx context.Context, caller role.Caller, r role.Role) ([]*user.User, error) {
	group, res, err := groupOf(r)
	if err != nil {
		return nil, err
	}
	if err := policy.Enforce(caller, policy.Read, res); err != nil {
		return nil, err
	}

	return s.users.ListByGroup(ctx, group)
}

func (s *service) AddToRole(ctx context.Context, caller role.Caller, r role.Role, username string) (*user.User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToRole"),
		zap.Stringer("role", r),
	)

	group, res, err := groupOf(r)
	if err != nil {
		return nil, err
	}
	if err := policy.Enforce(caller, policy.Create, res); err != nil {
		log.Warn("add to role denied", zap.Error(err))
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		log.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if err := s.users.AddToGroup(ctx, u.ID, group); err != nil {
		log.Error("failed to add membership", zap.Uint("target_user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("membership added", zap.Uint("target_user_id", u.ID))
	return u, nil
}

// RemoveFromRole succeeds for users that were never members.
func (s *service) RemoveFromRole(ctx context.Context, caller role.Caller, r role.Role, userID uint) (*user.User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveFromRole"),
		zap.Stringer("role", r),
		zap.Uint("target_user_id", userID),
	)

	group, res, err := groupOf(r)
	if err != nil {
		return nil, err
	}
	if err := policy.Enforce(caller, policy.Delete, res); err != nil {
		log.Warn("remove from role denied", zap.Error(err))
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if err := s.users.RemoveFromGroup(ctx, u.ID, group); err != nil {
		log.Error("failed to remove membership", zap.Error(err))
		return nil, err
	}

	log.Info("membership removed")
	return u, nil
}
