package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studiocrm/crm-api/internal/database"
	"github.com/studiocrm/crm-api/internal/models"
)

// RequireContactAccess checks if the user may touch a contact. Non-admins
// only reach contacts in their own rep partition; foreign contacts answer
// 404 to avoid leaking their existence.
func RequireContactAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		contactIDStr := c.Param("id")
		contactID, err := strconv.ParseUint(contactIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid contact ID",
			})
			c.Abort()
			return
		}

		viewer, exists := GetViewer(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var contact models.Contact
		if err := database.GetDB().First(&contact, contactID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Contact not found",
			})
			c.Abort()
			return
		}

		if !viewer.CanSeeContact(&contact) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Contact not found",
			})
			c.Abort()
			return
		}

		c.Set("contact", contact)
		c.Next()
	}
}

// RequireTaskAccess resolves a task's contact and applies the same rep
// partition check as RequireContactAccess.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid task ID",
			})
			c.Abort()
			return
		}

		viewer, exists := GetViewer(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var task models.FollowUpTask
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			c.Abort()
			return
		}

		var contact models.Contact
		if err := database.GetDB().First(&contact, task.ContactID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			c.Abort()
			return
		}

		if !viewer.CanSeeContact(&contact) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}
