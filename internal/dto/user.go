package dto

import (
	"github.com/avolkov/task-manager-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// appears here.
type UserDTO struct {
	ID       uint64    `json:"id"`
	Email    string    `json:"email"`
	IsActive bool      `json:"is_active"`
	Tasks    []TaskDTO `json:"tasks"`
}

// TokenDTO is the login response body.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	tasks := make([]TaskDTO, len(user.Tasks))
	for i, task := range user.Tasks {
		tasks[i] = ToTaskDTO(task)
	}

	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
		Tasks:    tasks,
	}
}
