// Package policy is the single place that decides whether a caller may act
// on a resource, and which orders a caller may list.
package policy

import (
	"littlelemon-be/internal/apperr"
	"littlelemon-be/internal/metrics"
	"littlelemon-be/internal/role"
)

type Kind int

const (
	MenuItem Kind = iota
	Category
	ManagerGroup
	DeliveryCrewGroup
	Cart
	OrderCollection
	Order
)

func (k Kind) String() string {
	switch k {
	case MenuItem:
		return "menu_item"
	case Category:
		return "category"
	case ManagerGroup:
		return "manager_group"
	case DeliveryCrewGroup:
		return "delivery_crew_group"
	case Cart:
		return "cart"
	case OrderCollection:
		return "order_collection"
	case Order:
		return "order"
	}
	return "unknown"
}

type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
	Assign
	UpdateStatus
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Assign:
		return "assign"
	case UpdateStatus:
		return "update_status"
	}
	return "unknown"
}

// Resource describes the target of an action. OwnerID and AssigneeID are
// only meaningful for Order (and Cart, where OwnerID is the cart holder);
// zero means "none".
type Resource struct {
	Kind       Kind
	OwnerID    uint
	AssigneeID uint
}

func On(kind Kind) Resource { return Resource{Kind: kind} }

// OrderResource builds the resource for a single order.
func OrderResource(ownerID uint, assigneeID *uint) Resource {
	r := Resource{Kind: Order, OwnerID: ownerID}
	if assigneeID != nil {
		r.AssigneeID = *assigneeID
	}
	return r
}

type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) Allowed() bool { return d == Allow }

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	}
	return "deny_forbidden"
}

// Authorize evaluates the access table for one (caller, action, resource).
func Authorize(c role.Caller, action Action, res Resource) Decision {
	// Catalogue reads are open to everybody, anonymous included.
	if (res.Kind == MenuItem || res.Kind == Category) && action == Read {
		return Allow
	}
	if !c.Authenticated {
		return DenyUnauthenticated
	}

	switch res.Kind {
	case MenuItem, Category:
		return allowIf(c.IsManager() && (action == Create || action == Update || action == Delete))

	case ManagerGroup, DeliveryCrewGroup:
		return allowIf(c.IsManager() && (action == Read || action == Create || action == Delete))

	case Cart:
		if action != Read && action != Create && action != Delete {
			return DenyForbidden
		}
		return allowIf(isCustomer(c) && (res.OwnerID == 0 || res.OwnerID == c.UserID))

	case OrderCollection:
		switch action {
		case Read:
			return Allow
		case Create:
			return allowIf(isCustomer(c))
		}
		return DenyForbidden

	case Order:
		return authorizeOrder(c, action, res)
	}

	return DenyForbidden
}

func authorizeOrder(c role.Caller, action Action, res Resource) Decision {
	placedBySelf := res.OwnerID != 0 && res.OwnerID == c.UserID
	assignedToSelf := res.AssigneeID != 0 && res.AssigneeID == c.UserID

	switch action {
	case Read:
		if c.IsManager() {
			return Allow
		}
		if c.Role == role.DeliveryCrew {
			return allowIf(assignedToSelf || placedBySelf)
		}
		return allowIf(placedBySelf)

	case Assign, Delete:
		return allowIf(c.IsManager())

	case UpdateStatus:
		return allowIf(!c.IsManager() && c.Role == role.DeliveryCrew && assignedToSelf)

	case Update:
		return allowIf(isCustomer(c) && placedBySelf)
	}

	return DenyForbidden
}

func isCustomer(c role.Caller) bool {
	return c.Authenticated && !c.IsManager() && c.Role == role.Customer
}

func allowIf(ok bool) Decision {
	if ok {
		return Allow
	}
	return DenyForbidden
}

// Enforce is Authorize expressed as an error for the service layer.
func Enforce(c role.Caller, action Action, res Resource) error {
	d := Authorize(c, action, res)
	metrics.Default.RecordDecision(d.Allowed())

	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return apperr.ErrUnauthenticated
	}
	return apperr.ErrForbidden
}
