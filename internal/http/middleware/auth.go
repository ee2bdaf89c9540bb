// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. The middleware verifies
// the Authorization header, resolves it to a user ID, and stashes the
// identity in the Gin context under the "userID" key where the rest of the
// stack (handlers, rate limiter, idempotency validator, access logs)
// already looks for it.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to a user ID. Satisfied by
// *auth.Manager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ctxKeyUserID is the Gin context key carrying the authenticated user ID.
const ctxKeyUserID = "userID"

// UserIDFrom returns the authenticated user ID from the Gin context, or ""
// when the request is anonymous.
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Auth returns a middleware that authenticates requests carrying a
// "Bearer <token>" Authorization header.
//
// Behavior:
//   - No Authorization header: the request proceeds anonymously; protected
//     handlers reject it themselves with 401. This keeps public read
//     endpoints and authenticated endpoints on one middleware chain.
//   - A malformed or invalid token: responds 401 immediately. A bad token
//     is never silently downgraded to anonymous.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "unauthorized",
				"message":    "authorization header must be 'Bearer <token>'",
			})
			return
		}
		uid, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "unauthorized",
				"message":    "invalid or expired token",
			})
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}
