package handlers

import "github.com/gin-gonic/gin"

// identityFromHeader stands in for the bearer-token middleware in handler
// tests: it promotes the X-User-ID request header into the context identity
// the handlers read. Only test routers install it; the handlers themselves
// never look at the raw header (see TestCastVote_HeaderAloneIsAnonymous).
func identityFromHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := c.GetHeader("X-User-ID"); v != "" {
			c.Set("userID", v)
		}
		c.Next()
	}
}
