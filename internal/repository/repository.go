package repository

import (
	"github.com/avolkov/task-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// DeleteWithTasks deletes a user and every task they own atomically
	DeleteWithTasks(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByTitle finds the first task matching (title, owner) in id order
	FindByTitle(ownerID uint64, title string) (*models.Task, error)

	// List retrieves an owner's tasks matching the filter, in insertion order
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}

// TaskFilter holds owner-scoped equality filters for listing tasks.
// Nil fields are no-ops.
type TaskFilter struct {
	OwnerID  uint64
	Title    *string
	Priority *models.TaskPriority
	Status   *models.TaskStatus
}
