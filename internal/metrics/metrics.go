// Package metrics keeps in-process counters for authorization decisions and
// order lifecycle transitions.
package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

type Registry struct {
	PolicyAllowed Counter
	PolicyDenied  Counter

	OrdersPlaced    Counter
	OrdersAssigned  Counter
	OrdersCompleted Counter
	OrdersDeleted   Counter

	started time.Time
}

func NewRegistry() *Registry {
	return &Registry{started: time.Now()}
}

// Default is the process-wide registry.
var Default = NewRegistry()

// RecordDecision counts one policy evaluation.
func (r *Registry) RecordDecision(allowed bool) {
	if allowed {
		r.PolicyAllowed.Inc()
		return
	}
	r.PolicyDenied.Inc()
}

type Snapshot struct {
	UptimeSeconds   int64  `json:"uptime_seconds"`
	PolicyAllowed   uint64 `json:"policy_allowed"`
	PolicyDenied    uint64 `json:"policy_denied"`
	OrdersPlaced    uint64 `json:"orders_placed"`
	OrdersAssigned  uint64 `json:"orders_assigned"`
	OrdersCompleted uint64 `json:"orders_completed"`
	OrdersDeleted   uint64 `json:"orders_deleted"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:   int64(time.Since(r.started).Seconds()),
		PolicyAllowed:   r.PolicyAllowed.Load(),
		PolicyDenied:    r.PolicyDenied.Load(),
		OrdersPlaced:    r.OrdersPlaced.Load(),
		OrdersAssigned:  r.OrdersAssigned.Load(),
		OrdersCompleted: r.OrdersCompleted.Load(),
		OrdersDeleted:   r.OrdersDeleted.Load(),
	}
}
