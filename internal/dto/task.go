package dto

import (
	"github.com/avolkov/task-manager-api/internal/constants"
	"github.com/avolkov/task-manager-api/internal/models"
)

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	Deadline    *string             `json:"deadline"`
	OwnerID     uint64              `json:"owner_id"`
}

// UpdateTaskResponse wraps an updated task with the field names that changed.
type UpdateTaskResponse struct {
	Message       string   `json:"message"`
	UpdatedFields []string `json:"updated_fields"`
	Task          TaskDTO  `json:"task"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTaskDTO converts a Task model to TaskDTO. The deadline is rendered with
// the service's fixed HH:MM:DD:MM:YYYY pattern.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		OwnerID:     task.OwnerID,
	}

	if task.Deadline != nil {
		formatted := task.Deadline.Format(constants.DeadlineOutputFormat)
		dto.Deadline = &formatted
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, keeping their order.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
