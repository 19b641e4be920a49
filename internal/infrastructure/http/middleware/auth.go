package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	appctx "inventory/internal/core/context"
	"inventory/internal/domain/auth"
)

// Authenticator resolves bearer tokens to clients.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Client, error)
}

// Auth middleware requires a valid bearer token and puts the client into
// the request context.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperror.NewUnauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abort(c, apperror.NewUnauthorized("invalid authorization header format"))
			return
		}

		client, err := authenticator.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, err)
			return
		}

		ctx := appctx.WithClient(c.Request.Context(), &appctx.ClientContext{Name: client.Name})
		c.Request = c.Request.WithContext(ctx)
		c.Set("client", client.Name)

		c.Next()
	}
}
