package repository

import (
	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/models"
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

// FindByID finds a task by ID with its owner preloaded
func (r *GormTaskRepository) FindByID(id uint64, includeDeleted bool) (*models.Task, error) {
	var task models.Task
	query := r.db.Preload("User")
	if !includeDeleted {
		query = query.Scopes(database.NotDeleted)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks visible under the filter's scope
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// Owner-role conditions need the owner row
	if filter.Scope.OwnerRole != nil || filter.OwnerRole != nil {
		query = query.Joins("JOIN users ON users.id = tasks.user_id")
	}

	if !filter.IncludeDeleted {
		query = query.Scopes(database.NotDeleted)
	}

	switch {
	case filter.Scope.All:
		// unrestricted
	case filter.Scope.OwnerRole != nil:
		query = query.Where("users.role = ? OR tasks.user_id = ?",
			*filter.Scope.OwnerRole, derefUint64(filter.Scope.OwnerID))
	case filter.Scope.OwnerID != nil:
		query = query.Where("tasks.user_id = ?", *filter.Scope.OwnerID)
	default:
		return []models.Task{}, 0, nil
	}

	if filter.OwnerRole != nil {
		query = query.Where("users.role = ?", *filter.OwnerRole)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("User").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListChildren returns the non-deleted direct subtasks of a task
func (r *GormTaskRepository) ListChildren(parentID uint64) ([]models.Task, error) {
	var children []models.Task
	err := r.db.Preload("User").
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("created_at DESC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// SoftDelete flips the deletion flag
func (r *GormTaskRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func derefUint64(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}
