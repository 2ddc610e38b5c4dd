package repository

import (
	"github.com/avolkov/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByTitle finds the first task matching (title, owner). Titles are not
// unique per owner; id order makes the first match deterministic.
func (r *GormTaskRepository) FindByTitle(ownerID uint64, title string) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Where("title = ? AND owner_id = ?", title, ownerID).
		Order("id ASC").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves an owner's tasks with optional equality filters applied,
// ordered by insertion
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{}).Where("owner_id = ?", filter.OwnerID)

	if filter.Title != nil {
		query = query.Where("title = ?", *filter.Title)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var tasks []models.Task
	if err := query.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
