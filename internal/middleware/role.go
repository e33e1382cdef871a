package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/studiocrm/crm-api/internal/errors"
)

// RequireAdmin rejects requests whose viewer is not an admin. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !viewer.IsAdmin() {
			apierrors.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
