// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderPlaced        Type = "order.placed"
	OrderAssigned      Type = "order.assigned"
	OrderStatusChanged Type = "order.status_changed"
	OrderDeleted       Type = "order.deleted"
)

// OrderEvent is the message body; its Type doubles as the routing key.
type OrderEvent struct {
	Type           Type            `json:"type"`
	OrderID        uint            `json:"order_id"`
	UserID         uint            `json:"user_id"`
	ActorID        uint            `json:"actor_id"`
	DeliveryCrewID *uint           `json:"delivery_crew_id,omitempty"`
	Status         bool            `json:"status"`
	Total          decimal.Decimal `json:"total"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event. It is used
// when no broker is configured.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (nopPublisher) Close() error                             { return nil }
