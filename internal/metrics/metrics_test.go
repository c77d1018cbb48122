package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestRegistry_RecordDecision(t *testing.T) {
	r := NewRegistry()

	r.RecordDecision(true)
	r.RecordDecision(false)
	r.RecordDecision(false)
	r.OrdersPlaced.Inc()

	snap := r.Snapshot()
	assert.Equal(t, uint64(1), snap.PolicyAllowed)
	assert.Equal(t, uint64(2), snap.PolicyDenied)
	assert.Equal(t, uint64(1), snap.OrdersPlaced)
	assert.Zero(t, snap.OrdersDeleted)
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
