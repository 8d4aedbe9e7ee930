package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
)

// TaskDTO represents a task in detail responses, with its subtask tree
// nested recursively.
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ParentID    *uint64           `json:"parent_id"`
	Owner       *UserDTO          `json:"owner,omitempty"`
	IsDeleted   bool              `json:"is_deleted"`
	Subtasks    []TaskDTO         `json:"subtasks"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TaskListItemDTO represents a task in list responses (no subtree).
type TaskListItemDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ParentID    *uint64           `json:"parent_id"`
	Owner       *UserDTO          `json:"owner,omitempty"`
	IsDeleted   bool              `json:"is_deleted"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// ToTaskDTO converts a single Task model without subtasks
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ParentID:    task.ParentID,
		IsDeleted:   task.IsDeleted,
		Subtasks:    []TaskDTO{},
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.User.ID != 0 {
		owner := ToUserDTO(task.User)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskTreeDTO converts a resolved task tree to its nested DTO form
func ToTaskTreeDTO(tree services.TaskTree) TaskDTO {
	dto := ToTaskDTO(tree.Task)
	for _, child := range tree.Subtasks {
		dto.Subtasks = append(dto.Subtasks, ToTaskTreeDTO(child))
	}
	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ParentID:    task.ParentID,
		IsDeleted:   task.IsDeleted,
		CreatedAt:   task.CreatedAt,
	}

	if task.User.ID != 0 {
		owner := ToUserDTO(task.User)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
