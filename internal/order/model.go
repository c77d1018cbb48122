package order

import (
	"time"

	"littlelemon-be/internal/policy"

	"github.com/shopspring/decimal"
)

// State is the lifecycle position of an order. Assignment is not a state.
type State string

const (
	StateOpen      State = "open"
	StateCompleted State = "completed"
)

func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateOpen, StateCompleted:
		return State(s), true
	}
	return "", false
}

// Order is created only from a cart. Total and Items are fixed at placement.
type Order struct {
	ID             uint            `json:"id"`
	UserID         uint            `json:"user"`
	DeliveryCrewID *uint           `json:"delivery_crew"`
	Status         bool            `json:"status"`
	Total          decimal.Decimal `json:"total"`
	Date           time.Time       `json:"date"`
	Items          []*OrderItem    `json:"order_items"`
}

func (o *Order) State() State {
	if o.Status {
		return StateCompleted
	}
	return StateOpen
}

// Resource describes the order to the policy engine.
func (o *Order) Resource() policy.Resource {
	return policy.OrderResource(o.UserID, o.DeliveryCrewID)
}

type OrderItem struct {
	ID            uint            `json:"id"`
	OrderID       uint            `json:"order"`
	MenuItemID    uint            `json:"menuitem_id"`
	MenuItemTitle string          `json:"menuitem"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Price         decimal.Decimal `json:"price"`
}

type ListParams struct {
	State *State
	Limit int
	Page  int
}

// Update is the body of PUT/PATCH on a single order. Which field is read
// depends on the caller's role.
type Update struct {
	DeliveryCrewID *uint
	Status         *bool
}
