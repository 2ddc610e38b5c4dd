package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov/task-manager-api/internal/dto"
	apierrors "github.com/avolkov/task-manager-api/internal/errors"
	"github.com/avolkov/task-manager-api/internal/middleware"
	"github.com/avolkov/task-manager-api/internal/models"
	"github.com/avolkov/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// deadlineLayouts are the accepted input formats for the deadline field.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task owned by the authenticated user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type createTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		Status      string `json:"status"`
		Deadline    string `json:"deadline"`
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		apierrors.BadRequest(c, "Invalid deadline format")
		return
	}

	task, err := h.taskService.CreateTask(user, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		Deadline:    deadline,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrDeadlineInPast):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns the authenticated user's tasks with optional filters.
// The path segment is accepted for compatibility but the query is always
// scoped to the token's owner.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var input services.ListTasksInput
	if v := c.Query("title"); v != "" {
		input.Title = &v
	}
	if v := c.Query("priority"); v != "" {
		input.Priority = &v
	}
	if v := c.Query("status"); v != "" {
		input.Status = &v
	}

	tasks, err := h.taskService.ListTasks(user, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidStatus):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to list tasks")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTask applies a partial update to the task addressed by title.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	title := c.Param("title")

	type updateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		Deadline    *string `json:"deadline"`
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if req.Deadline != nil && strings.TrimSpace(*req.Deadline) != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			apierrors.BadRequest(c, "Invalid deadline format")
			return
		}
		input.Deadline = deadline
	}

	task, updatedFields, err := h.taskService.UpdateTask(user, title, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, fmt.Sprintf("Task '%s' not found", title))
		case errors.Is(err, services.ErrNothingToUpdate),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrDeadlineInPast):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.UpdateTaskResponse{
		Message:       fmt.Sprintf("Task '%s' updated", title),
		UpdatedFields: updatedFields,
		Task:          dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes the task addressed by title.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	title := c.Param("title")

	deletedTitle, err := h.taskService.DeleteTask(user, title)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, fmt.Sprintf("Task '%s' not found", title))
		} else {
			apierrors.InternalError(c, "Failed to delete task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Task '%s' deleted", deletedTitle),
	})
}

// parseDeadline accepts RFC3339 or a few common date-time shapes. An empty
// string means no deadline.
func parseDeadline(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized deadline %q", value)
}
