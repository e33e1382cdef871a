package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studiocrm/crm-api/internal/models"
	"github.com/studiocrm/crm-api/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskRequired = errors.New("task description is required")
)

// TaskService handles follow-up task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a follow-up task
type CreateTaskInput struct {
	ContactID uint64
	Task      string
	DueDate   *time.Time
}

// CreateTask creates a follow-up task for a contact.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.FollowUpTask, error) {
	if strings.TrimSpace(input.Task) == "" {
		return nil, ErrTaskRequired
	}

	task := &models.FollowUpTask{
		ContactID: input.ContactID,
		Task:      input.Task,
		DueDate:   input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// CompleteTask marks a task completed. There is no reopen operation.
func (s *TaskService) CompleteTask(id uint64) error {
	if err := s.taskRepo.Complete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}

// DeleteTask deletes a task.
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
