package middleware

import "context"

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the request identity
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the identity resolved for this request. Requests
// that never passed through LoadIdentity are anonymous.
func GetIdentity(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return Anonymous()
}
