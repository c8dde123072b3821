package middlewares

import (
	"net/http"

	"github.com/devsync89/jobportal/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// RequireAction gates a route on the capability table rather than on raw
// role comparisons, so HTTP routing and engine checks share one source of
// truth for who may do what.
func (m *AuthMiddleware) RequireAction(action pipeline.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		if !pipeline.Allowed(role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Role not permitted for this operation",
				},
			})
			return
		}
		c.Next()
	}
}
