package context

import (
	"context"
)

// ClientContext describes the API client that authorized the request.
type ClientContext struct {
	// Name is the label stored with the client's token.
	Name string
}

type clientContextKey struct{}

// WithClient adds ClientContext to context.
func WithClient(ctx context.Context, client *ClientContext) context.Context {
	return context.WithValue(ctx, clientContextKey{}, client)
}

// GetClient returns ClientContext from context.
func GetClient(ctx context.Context) *ClientContext {
	if v, ok := ctx.Value(clientContextKey{}).(*ClientContext); ok {
		return v
	}
	return nil
}

// GetClientName returns the authorized client name or empty string.
func GetClientName(ctx context.Context) string {
	if c := GetClient(ctx); c != nil {
		return c.Name
	}
	return ""
}
