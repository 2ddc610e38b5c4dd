package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avolkov/task-manager-api/internal/models"
	"github.com/avolkov/task-manager-api/internal/notify"
	"github.com/avolkov/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrDeadlineInPast  = errors.New("deadline cannot be in the past")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)

// TaskService handles task business logic. All operations are scoped to the
// owning user.
type TaskService struct {
	taskRepo repository.TaskRepository
	notifier *notify.Notifier
	now      func() time.Time // injectable for testing
}

// NewTaskService creates a new TaskService. The notifier may be nil, in
// which case high-priority creation simply skips the email.
func NewTaskService(taskRepo repository.TaskRepository, notifier *notify.Notifier) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	Deadline    *time.Time
}

// CreateTask validates and persists a task for owner. A resulting high
// priority dispatches the notification off the request path; the response
// never waits on it.
func (s *TaskService) CreateTask(owner *models.User, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	if input.Status == "" {
		input.Status = models.TaskStatusNew
	}
	if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if err := s.validateDeadline(input.Deadline); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		Deadline:    input.Deadline,
		OwnerID:     owner.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.Priority == models.TaskPriorityHigh && s.notifier != nil {
		s.notifier.Dispatch(owner.Email, task.Title)
	}

	return task, nil
}

// ListTasksInput represents optional equality filters for listing tasks
type ListTasksInput struct {
	Title    *string
	Priority *string
	Status   *string
}

// ListTasks returns the owner's tasks matching every supplied filter.
func (s *TaskService) ListTasks(owner *models.User, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{OwnerID: owner.ID}

	if input.Title != nil && *input.Title != "" {
		filter.Title = input.Title
	}
	if input.Priority != nil && *input.Priority != "" {
		priority := models.TaskPriority(*input.Priority)
		if !models.ValidPriority(priority) {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &priority
	}
	if input.Status != nil && *input.Status != "" {
		status := models.TaskStatus(*input.Status)
		if !models.ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTaskInput represents partial fields for updating a task. A nil field
// was not sent; a field that is empty after trimming counts as not sent too.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Deadline    *time.Time
}

// UpdateTask applies the supplied fields to the first task matching (title,
// owner) and returns the updated task plus the names of fields that changed.
func (s *TaskService) UpdateTask(owner *models.User, title string, input UpdateTaskInput) (*models.Task, []string, error) {
	task, err := s.taskRepo.FindByTitle(owner.ID, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}

	var updated []string

	if v := trimmed(input.Title); v != nil {
		task.Title = *v
		updated = append(updated, "title")
	}
	if v := trimmed(input.Description); v != nil {
		task.Description = *v
		updated = append(updated, "description")
	}
	if v := trimmed(input.Priority); v != nil {
		priority := models.TaskPriority(*v)
		if !models.ValidPriority(priority) {
			return nil, nil, ErrInvalidPriority
		}
		task.Priority = priority
		updated = append(updated, "priority")
	}
	if v := trimmed(input.Status); v != nil {
		status := models.TaskStatus(*v)
		if !models.ValidStatus(status) {
			return nil, nil, ErrInvalidStatus
		}
		task.Status = status
		updated = append(updated, "status")
	}
	if input.Deadline != nil {
		if err := s.validateDeadline(input.Deadline); err != nil {
			return nil, nil, err
		}
		task.Deadline = input.Deadline
		updated = append(updated, "deadline")
	}

	if len(updated) == 0 {
		return nil, nil, ErrNothingToUpdate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, updated, nil
}

// DeleteTask removes the first task matching (title, owner) and returns the
// deleted title for confirmation messaging.
func (s *TaskService) DeleteTask(owner *models.User, title string) (string, error) {
	task, err := s.taskRepo.FindByTitle(owner.ID, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTaskNotFound
		}
		return "", fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return "", fmt.Errorf("failed to delete task: %w", err)
	}

	return task.Title, nil
}

// validateDeadline rejects deadlines behind the current UTC time.
func (s *TaskService) validateDeadline(deadline *time.Time) error {
	if deadline == nil {
		return nil
	}
	if deadline.UTC().Before(s.now().UTC()) {
		return ErrDeadlineInPast
	}
	return nil
}

// trimmed returns the trimmed value, or nil when the field was absent or
// empty after trimming.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
