package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"littlelemon-be/internal/utils"

	"golang.org/x/time/rate"
)

const visitorTTL = 3 * time.Minute

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter throttles anonymous callers per IP and authenticated callers per
// user, each with its own per-minute quota.
type Limiter struct {
	anon rate.Limit
	user rate.Limit

	anonBurst int
	userBurst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewLimiter(anonPerMinute, userPerMinute int) *Limiter {
	anonPerMinute = max(anonPerMinute, 1)
	userPerMinute = max(userPerMinute, 1)
	return &Limiter{
		anon:      rate.Every(time.Minute / time.Duration(anonPerMinute)),
		user:      rate.Every(time.Minute / time.Duration(userPerMinute)),
		anonBurst: anonPerMinute,
		userBurst: userPerMinute,
		visitors:  make(map[string]*visitor),
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

// Cleanup drops idle visitors every minute until ctx is done.
func (l *Limiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

// Middleware must run inside Auth so authenticated callers are keyed by user.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var limiter *rate.Limiter

		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			limiter = l.getVisitor(fmt.Sprintf("user:%d", userID), l.user, l.userBurst)
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			limiter = l.getVisitor("ip:"+ip, l.anon, l.anonBurst)
		}

		if !limiter.Allow() {
			utils.WriteJSONError(w, "Request was throttled.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
