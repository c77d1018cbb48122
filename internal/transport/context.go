// Package transport carries the resolved caller from the HTTP edge down to
// the handlers.
package transport

import (
	"context"

	"littlelemon-be/internal/role"
	"littlelemon-be/internal/user"
)

type ctxKey string

const (
	callerKey ctxKey = "caller"
	userKey   ctxKey = "user"
)

// WithCaller stores the authenticated user and their resolved caller.
func WithCaller(ctx context.Context, u *user.User, c role.Caller) context.Context {
	ctx = context.WithValue(ctx, callerKey, c)
	ctx = context.WithValue(ctx, userKey, u)
	return ctx
}

// CallerFrom returns the caller in ctx, or an anonymous one.
func CallerFrom(ctx context.Context) role.Caller {
	c, ok := ctx.Value(callerKey).(role.Caller)
	if !ok {
		return role.Anonymous()
	}
	return c
}

func UserFrom(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey).(*user.User)
	return u
}
