package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		subject Subject
		want    Role
	}{
		{"no groups is customer", Subject{}, Customer},
		{"crew", Subject{Memberships: []Role{DeliveryCrew}}, DeliveryCrew},
		{"manager", Subject{Memberships: []Role{Manager}}, Manager},
		{"manager outranks crew", Subject{Memberships: []Role{DeliveryCrew, Manager}}, Manager},
		{"order does not matter", Subject{Memberships: []Role{Manager, DeliveryCrew}}, Manager},
		{"duplicates collapse", Subject{Memberships: []Role{DeliveryCrew, DeliveryCrew}}, DeliveryCrew},
		{"superuser without groups", Subject{Superuser: true}, Manager},
		{"superuser in crew", Subject{Memberships: []Role{DeliveryCrew}, Superuser: true}, Manager},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Resolve(c.subject).Primary)
		})
	}
}

func TestSet_Has(t *testing.T) {
	set := Resolve(Subject{Memberships: []Role{DeliveryCrew, Manager}})

	assert.True(t, set.Has(Manager))
	assert.True(t, set.Has(DeliveryCrew))
	assert.True(t, set.Has(Customer))

	super := Resolve(Subject{Superuser: true})
	assert.False(t, super.Has(DeliveryCrew))
	assert.True(t, super.Superuser)
}

func TestCaller(t *testing.T) {
	assert.False(t, Anonymous().IsManager())
	assert.False(t, Anonymous().Authenticated)

	c := NewCaller(4, Resolve(Subject{Superuser: true}))
	assert.True(t, c.IsManager())
	assert.Equal(t, uint(4), c.UserID)

	crew := NewCaller(5, Resolve(Subject{Memberships: []Role{DeliveryCrew}}))
	assert.False(t, crew.IsManager())
}

func TestParse(t *testing.T) {
	r, ok := Parse("delivery-crew")
	assert.True(t, ok)
	assert.Equal(t, DeliveryCrew, r)

	_, ok = Parse("Managers")
	assert.False(t, ok)

	assert.Equal(t, "manager", Manager.String())
}
