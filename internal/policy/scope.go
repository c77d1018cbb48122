package policy

import "littlelemon-be/internal/role"

type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeAll
	ScopeAssignedTo
	ScopePlacedBy
)

// Scope is the row predicate applied to an order listing.
type Scope struct {
	Kind   ScopeKind
	UserID uint
}

// Matches evaluates the predicate against one order in memory.
func (s Scope) Matches(ownerID uint, assigneeID *uint) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeAssignedTo:
		return assigneeID != nil && *assigneeID == s.UserID
	case ScopePlacedBy:
		return ownerID == s.UserID
	}
	return false
}

// OrderScope returns which orders c may list: managers see all, crew the
// orders assigned to them, customers the orders they placed.
func OrderScope(c role.Caller) Scope {
	switch {
	case !c.Authenticated:
		return Scope{Kind: ScopeNone}
	case c.IsManager():
		return Scope{Kind: ScopeAll}
	case c.Role == role.DeliveryCrew:
		return Scope{Kind: ScopeAssignedTo, UserID: c.UserID}
	}
	return Scope{Kind: ScopePlacedBy, UserID: c.UserID}
}
