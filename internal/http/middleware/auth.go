// README: Bearer-token auth middleware; stores the verified actor in the request context.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bistro/internal/infra"
	"bistro/internal/types"
)

const actorKey = "bistro.actor"

// Auth verifies the Authorization header and aborts with 401 when the
// token is missing or invalid. Handlers behind it can rely on
// CallerActor returning a non-anonymous actor.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		token, err := verifier.VerifyToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(actorKey, types.Actor{
			Role: types.ParseRole(token.Role),
			ID:   types.ID(token.Subject),
		})
		c.Next()
	}
}

// CallerActor returns the authenticated actor, or an anonymous one when
// the auth middleware did not run on this route.
func CallerActor(c *gin.Context) types.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(types.Actor); ok {
			return actor
		}
	}
	return types.Actor{Role: types.RoleAnonymous}
}
