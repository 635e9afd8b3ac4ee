// Package identity carries the request identity through context.Context.
// The identity arrives on inter-service HTTP calls as the transaction-id,
// user-id and service-id headers; an echo middleware lifts them into the
// context so application code never touches the transport.
package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Header names used by the surrounding services.
const (
	HeaderTransactionID = "transaction-id"
	HeaderUserID        = "user-id"
	HeaderServiceID     = "service-id"
)

// Identity identifies who triggered the current request: the distributed
// transaction it belongs to, the acting user, and the calling service.
// Either UserID or ServiceID may be empty, depending on who is calling.
type Identity struct {
	TransactionID string
	UserID        string
	ServiceID     string
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity from the context.
// The second return value reports whether an identity was present.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Middleware lifts the identity headers into the request context.
// A missing transaction id gets a fresh one so downstream calls and logs can
// always be correlated.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			request := c.Request()

			id := Identity{
				TransactionID: request.Header.Get(HeaderTransactionID),
				UserID:        request.Header.Get(HeaderUserID),
				ServiceID:     request.Header.Get(HeaderServiceID),
			}
			if id.TransactionID == "" {
				id.TransactionID = uuid.NewString()
			}

			ctx := WithIdentity(request.Context(), id)
			c.SetRequest(request.WithContext(ctx))

			return next(c)
		}
	}
}
