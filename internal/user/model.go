package user

import (
	"time"

	"littlelemon-be/internal/role"
)

// Storage names of the role groups. Nothing outside this package should
// compare against these strings.
const (
	GroupManager      = "manager"
	GroupDeliveryCrew = "delivery-crew"
)

type User struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	IsSuperuser bool      `json:"-"`
	Groups      []string  `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// GroupFor returns the storage group backing a role. Customer has none.
func GroupFor(r role.Role) (string, bool) {
	switch r {
	case role.Manager:
		return GroupManager, true
	case role.DeliveryCrew:
		return GroupDeliveryCrew, true
	}
	return "", false
}

// Subject translates group memberships into the resolver's input. Unknown
// groups are ignored.
func (u *User) Subject() role.Subject {
	sub := role.Subject{Superuser: u.IsSuperuser}
	for _, g := range u.Groups {
		switch g {
		case GroupManager:
			sub.Memberships = append(sub.Memberships, role.Manager)
		case GroupDeliveryCrew:
			sub.Memberships = append(sub.Memberships, role.DeliveryCrew)
		}
	}
	return sub
}

// Roles resolves the user's role set.
func (u *User) Roles() role.Set {
	return role.Resolve(u.Subject())
}
