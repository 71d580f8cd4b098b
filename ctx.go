package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is the fiber locals key holding the request Identity
const DefaultContextKey = "user"

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity sets the Identity in the given context
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext finds the Identity in the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	raw, ok := ctx.Value(identityCtxKey).(Identity)
	return raw, ok
}

// IdentityFromFiber extracts the Identity stored by the bearer middleware
func IdentityFromFiber(c *fiber.Ctx, key string) (Identity, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	if identity, ok := c.Locals(key).(Identity); ok {
		return identity, true
	}
	return IdentityFromContext(c.UserContext())
}
