// Package role classifies a user into exactly one of Manager, DeliveryCrew
// or Customer. Precedence is Manager > DeliveryCrew > Customer and a
// superuser always resolves to Manager.
package role

type Role int

const (
	Customer Role = iota
	DeliveryCrew
	Manager
)

func (r Role) String() string {
	switch r {
	case Manager:
		return "manager"
	case DeliveryCrew:
		return "delivery-crew"
	default:
		return "customer"
	}
}

// Parse maps the canonical names used in URLs and tokens back to a Role.
func Parse(name string) (Role, bool) {
	switch name {
	case "manager":
		return Manager, true
	case "delivery-crew":
		return DeliveryCrew, true
	case "customer":
		return Customer, true
	}
	return Customer, false
}

// Subject is what the resolver needs to know about a user. Memberships are
// already translated from storage group names by the user repository.
type Subject struct {
	Memberships []Role
	Superuser   bool
}

// Set is the resolved classification of a subject.
type Set struct {
	Primary   Role
	Superuser bool
	members   uint8
}

// Has reports whether the subject belongs to r's group (Customer is implied).
func (s Set) Has(r Role) bool {
	if r == Customer {
		return true
	}
	return s.members&(1<<uint(r)) != 0
}

// Resolve derives the role set of a subject. It never fails.
func Resolve(sub Subject) Set {
	set := Set{Primary: Customer, Superuser: sub.Superuser}
	for _, m := range sub.Memberships {
		if m == Customer {
			continue
		}
		set.members |= 1 << uint(m)
		if m > set.Primary {
			set.Primary = m
		}
	}
	if sub.Superuser {
		set.Primary = Manager
	}
	return set
}

// Caller is the resolved identity every core operation receives explicitly.
type Caller struct {
	UserID        uint
	Role          Role
	Superuser     bool
	Authenticated bool
}

func Anonymous() Caller {
	return Caller{}
}

func NewCaller(userID uint, set Set) Caller {
	return Caller{
		UserID:        userID,
		Role:          set.Primary,
		Superuser:     set.Superuser,
		Authenticated: true,
	}
}

// IsManager is true for managers and superusers alike.
func (c Caller) IsManager() bool {
	return c.Authenticated && (c.Role == Manager || c.Superuser)
}
