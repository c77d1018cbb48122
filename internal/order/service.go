package order

import (
	"context"
	"errors"
	"time"

	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/cart"
	"littlelemon-be/internal/db"
	"littlelemon-be/internal/events"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/metrics"
	"littlelemon-be/internal/policy"
	"littlelemon-be/internal/role"
	"littlelemon-be/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service is the order lifecycle: placement from a cart, crew assignment,
// status changes and deletion. Every call carries the resolved caller.
type Service interface {
	ListOrders(ctx context.Context, caller role.Caller, params ListParams) ([]*Order, error)
	GetOrder(ctx context.Context, caller role.Caller, id uint) (*Order, error)
	PlaceOrder(ctx context.Context, caller role.Caller) (*Order, error)
	// UpdateOrder picks the transition from the caller's role: managers
	// assign crew, crew change status, customers update their own order.
	UpdateOrder(ctx context.Context, caller role.Caller, id uint, upd Update) (*Order, error)
	AssignDeliveryCrew(ctx context.Context, caller role.Caller, id, crewID uint) (*Order, error)
	UpdateStatus(ctx context.Context, caller role.Caller, id uint, status bool) (*Order, error)
	UpdateOwnOrder(ctx context.Context, caller role.Caller, id uint, status bool) (*Order, error)
	DeleteOrder(ctx context.Context, caller role.Caller, id uint) error
}

type service struct {
	repo     Repository
	cartRepo cart.Repository
	userRepo user.Repository
	tx       db.TxManager
	events   events.Publisher
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	userRepo user.Repository,
	tx db.TxManager,
	publisher events.Publisher,
	reg *metrics.Registry,
) Service {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	if reg == nil {
		reg = metrics.Default
	}
	return &service{
		repo:     repo,
		cartRepo: cartRepo,
		userRepo: userRepo,
		tx:       tx,
		events:   publisher,
		metrics:  reg,
		now:      time.Now,
	}
}

func (s *service) ListOrders(ctx context.Context, caller role.Caller, params ListParams) ([]*Order, error) {
	if err := policy.Enforce(caller, policy.Read, policy.On(policy.OrderCollection)); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, policy.OrderScope(caller), params)
}

func (s *service) GetOrder(ctx context.Context, caller role.Caller, id uint) (*Order, error) {
	if !caller.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	// Someone else's order is a permission failure, not a missing one.
	if err := policy.Enforce(caller, policy.Read, o.Resource()); err != nil {
		return nil, err
	}
	return o, nil
}

// PlaceOrder converts the caller's cart into an order. Reading the cart,
// inserting the order and its items, and clearing the cart share one
// transaction; the cart rows stay locked until it commits.
func (s *service) PlaceOrder(ctx context.Context, caller role.Caller) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	if err := policy.Enforce(caller, policy.Create, policy.On(policy.OrderCollection)); err != nil {
		log.Warn("place order denied", zap.Error(err))
		return nil, err
	}

	var placed *Order
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		lines, err := s.cartRepo.LockLines(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		o := FromCart(caller.UserID, lines, s.now())
		if o.Total.GreaterThan(MaxTotal) {
			return ErrTotalTooLarge
		}

		placed, err = s.repo.Create(ctx, o)
		if err != nil {
			return err
		}

		// Only the locked lines were ordered. A line committed after the
		// lock stays in the cart.
		ids := make([]uint, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ID)
		}
		_, err = s.cartRepo.DeleteLines(ctx, caller.UserID, ids)
		return err
	})
	if err != nil {
		if errors.Is(err, apperr.ErrBadRequest) {
			log.Info("place order rejected", zap.Error(err))
		} else {
			log.Error("place order failed", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	log.Info("order placed",
		zap.Uint("order_id", placed.ID),
		zap.Int("items", len(placed.Items)),
		zap.Stringer("total", placed.Total),
	)
	s.publish(ctx, events.OrderPlaced, placed, caller.UserID)
	return placed, nil
}

func (s *service) UpdateOrder(ctx context.Context, caller role.Caller, id uint, upd Update) (*Order, error) {
	switch {
	case !caller.Authenticated:
		return nil, apperr.ErrUnauthenticated

	case caller.IsManager():
		if upd.DeliveryCrewID == nil {
			return nil, ErrDeliveryCrewMissing
		}
		return s.AssignDeliveryCrew(ctx, caller, id, *upd.DeliveryCrewID)

	case caller.Role == role.DeliveryCrew:
		if upd.Status == nil {
			return nil, ErrStatusMissing
		}
		return s.UpdateStatus(ctx, caller, id, *upd.Status)
	}

	if upd.Status == nil {
		return nil, ErrStatusMissing
	}
	return s.UpdateOwnOrder(ctx, caller, id, *upd.Status)
}

// AssignDeliveryCrew sets the crew member of an order. Reassignment
// overwrites; a target outside the delivery crew leaves the order untouched.
func (s *service) AssignDeliveryCrew(ctx context.Context, caller role.Caller, id, crewID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AssignDeliveryCrew"),
		zap.Uint("order_id", id),
		zap.Uint("crew_id", crewID),
	)

	if err := policy.Enforce(caller, policy.Assign, policy.Resource{Kind: policy.Order}); err != nil {
		log.Warn("assign denied", zap.Error(err))
		return nil, err
	}

	var (
		o    *Order
		crew *user.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		o, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		crew, err = s.userRepo.FindByID(gctx, crewID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("lookup failed", zap.Error(err))
		return nil, err
	}

	if o == nil {
		return nil, ErrOrderNotFound
	}
	if crew == nil {
		return nil, ErrAssigneeNotFound
	}
	if !crew.Roles().Has(role.DeliveryCrew) {
		log.Info("assignee rejected: not delivery crew")
		return nil, ErrInvalidAssignee
	}

	if err := s.repo.SetDeliveryCrew(ctx, id, crewID); err != nil {
		log.Error("failed to set delivery crew", zap.Error(err))
		return nil, err
	}
	o.DeliveryCrewID = &crew.ID

	s.metrics.OrdersAssigned.Inc()
	log.Info("delivery crew assigned")
	s.publish(ctx, events.OrderAssigned, o, caller.UserID)
	return o, nil
}

// UpdateStatus is the crew transition: only the assigned member may move
// the order between open and completed, in either direction.
func (s *service) UpdateStatus(ctx context.Context, caller role.Caller, id uint, status bool) (*Order, error) {
	return s.changeStatus(ctx, caller, id, status, "UpdateStatus", func(o *Order) error {
		if err := policy.Enforce(caller, policy.UpdateStatus, o.Resource()); err != nil {
			if errors.Is(err, apperr.ErrForbidden) {
				return ErrNotAssignedCrew
			}
			return err
		}
		return nil
	})
}

// UpdateOwnOrder is the customer transition on an order they placed. A
// completed order no longer accepts customer updates.
func (s *service) UpdateOwnOrder(ctx context.Context, caller role.Caller, id uint, status bool) (*Order, error) {
	return s.changeStatus(ctx, caller, id, status, "UpdateOwnOrder", func(o *Order) error {
		if err := policy.Enforce(caller, policy.Update, o.Resource()); err != nil {
			if errors.Is(err, apperr.ErrForbidden) {
				return ErrNotOwner
			}
			return err
		}
		if o.State() == StateCompleted {
			return ErrOrderCompleted
		}
		return nil
	})
}

func (s *service) changeStatus(
	ctx context.Context,
	caller role.Caller,
	id uint,
	status bool,
	method string,
	check func(o *Order) error,
) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.Uint("order_id", id),
		zap.Bool("status", status),
	)

	if !caller.Authenticated {
		return nil, apperr.ErrUnauthenticated
	}

	var (
		updated   *Order
		completed bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.repo.Lock(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if err := check(o); err != nil {
			return err
		}
		completed = status && !o.Status

		if err := s.repo.SetStatus(ctx, id, status); err != nil {
			return err
		}

		updated, err = s.repo.GetByID(ctx, id)
		if err == nil && updated == nil {
			err = ErrOrderNotFound
		}
		return err
	})
	if err != nil {
		log.Warn("status change rejected", zap.Error(err))
		return nil, err
	}

	if completed {
		s.metrics.OrdersCompleted.Inc()
	}
	log.Info("order status changed")
	s.publish(ctx, events.OrderStatusChanged, updated, caller.UserID)
	return updated, nil
}

// DeleteOrder removes the order and, by cascade, its items.
func (s *service) DeleteOrder(ctx context.Context, caller role.Caller, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrder"),
		zap.Uint("order_id", id),
	)

	if err := policy.Enforce(caller, policy.Delete, policy.Resource{Kind: policy.Order}); err != nil {
		log.Warn("delete denied", zap.Error(err))
		return err
	}

	var deleted *Order
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.repo.Lock(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		deleted = o
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		log.Warn("delete failed", zap.Error(err))
		return err
	}

	s.metrics.OrdersDeleted.Inc()
	log.Info("order deleted")
	s.publish(ctx, events.OrderDeleted, deleted, caller.UserID)
	return nil
}

// publish runs after commit. A broker failure never undoes a transition.
func (s *service) publish(ctx context.Context, typ events.Type, o *Order, actorID uint) {
	evt := events.OrderEvent{
		Type:           typ,
		OrderID:        o.ID,
		UserID:         o.UserID,
		ActorID:        actorID,
		DeliveryCrewID: o.DeliveryCrewID,
		Status:         o.Status,
		Total:          o.Total,
		OccurredAt:     s.now(),
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		logger.FromCtx(ctx).Warn("order event dropped",
			zap.String("event", string(typ)),
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
	}
}
