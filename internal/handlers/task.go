package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/studiocrm/crm-api/internal/errors"
	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/services"
)

// TaskHandler coordinates follow-up task handlers. Access is enforced by
// RequireTaskAccess, which resolves the task's contact first.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CompleteTask marks a task completed. Completion cannot be undone.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.taskService.CompleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        task.ID,
		"completed": true,
	})
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

func taskFromContext(c *gin.Context) (models.FollowUpTask, bool) {
	value, exists := c.Get("task")
	if !exists {
		return models.FollowUpTask{}, false
	}
	task, ok := value.(models.FollowUpTask)
	return task, ok
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
