package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/studiocrm/crm-api/internal/constants"
	apierrors "github.com/studiocrm/crm-api/internal/errors"
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/services"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)
		username := session.Get(constants.ContextKeyUsername)
		role := session.Get(constants.ContextKeyRole)

		if userID == nil || username == nil || role == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUsername, username)
		c.Set(constants.ContextKeyRole, role)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetViewer assembles the request's viewer from context
func GetViewer(c *gin.Context) (services.Viewer, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return services.Viewer{}, false
	}

	username, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return services.Viewer{}, false
	}
	name, ok := username.(string)
	if !ok {
		return services.Viewer{}, false
	}

	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return services.Viewer{}, false
	}
	roleStr, ok := role.(string)
	if !ok {
		return services.Viewer{}, false
	}

	return services.Viewer{
		UserID:   userID,
		Username: name,
		Role:     models.Role(roleStr),
	}, true
}
