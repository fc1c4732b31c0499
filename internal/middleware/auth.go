package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/equipo46/horarios-api/internal/backendless"
	apperrors "github.com/equipo46/horarios-api/pkg/errors"
	"github.com/equipo46/horarios-api/pkg/response"
)

// ContextTokenKey is the gin context key storing the caller's session token.
const ContextTokenKey = "userToken"

// UserToken gates protected routes on the presence of a non-empty
// user-token header. The token is never verified here; a stale token is
// rejected by the remote store on the forwarded call.
func UserToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(backendless.HeaderUserToken)
		if token == "" {
			response.AbortError(c, apperrors.Clone(apperrors.ErrUnauthorized, "missing user-token header"))
			return
		}

		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// OptionalUserToken attaches the token when present but never blocks.
func OptionalUserToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(backendless.HeaderUserToken); token != "" {
			c.Set(ContextTokenKey, token)
		}
		c.Next()
	}
}

// TokenFromContext returns the session token stored by UserToken, or an
// empty string when the route allowed anonymous access.
func TokenFromContext(c *gin.Context) string {
	if v, ok := c.Get(ContextTokenKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
