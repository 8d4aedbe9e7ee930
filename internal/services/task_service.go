package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/policy"
	"github.com/taskboard/taskboard-api/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("you do not have permission to perform this action on this task")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidRoleFilter    = errors.New("unknown role filter")
	ErrParentNotFound       = errors.New("parent task not found")
)

// TaskService handles task business logic. Every mutating operation runs
// the ownership policy and the actor's capability set.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	RoleFilter     string // narrows admin/moderator views by owner role
	Status         *models.TaskStatus
	IncludeDeleted bool // honored for administrators only
	Page           int
	PageSize       int
}

// ListTasks returns the tasks visible to the actor under their role's
// listing scope.
func (s *TaskService) ListTasks(actor *models.User, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Scope:    policy.ScopeFor(actor),
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.IncludeDeleted && actor.IsAdministrator() {
		filter.IncludeDeleted = true
	}

	if input.RoleFilter != "" && (actor.IsAdministrator() || actor.IsModerator()) {
		role := models.RoleName(input.RoleFilter)
		if !role.Valid() {
			return nil, 0, ErrInvalidRoleFilter
		}
		filter.OwnerRole = &role
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListPublicTasks returns all non-deleted tasks without any actor scoping.
func (s *TaskService) ListPublicTasks(page, pageSize int) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Scope:    policy.ListScope{All: true},
		Page:     page,
		PageSize: pageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public tasks: %w", err)
	}
	return tasks, total, nil
}

// TaskTree is a task with its transitive non-deleted subtasks resolved.
type TaskTree struct {
	Task     models.Task
	Subtasks []TaskTree
}

// GetTask returns a task with its subtask tree, after the ownership
// policy allows the actor to read it.
func (s *TaskService) GetTask(actor *models.User, taskID uint64) (*TaskTree, error) {
	task, err := s.findTask(taskID, actor.IsAdministrator())
	if err != nil {
		return nil, err
	}

	if !policy.CanAct(actor, &task.User) {
		return nil, ErrTaskPermissionDenied
	}

	tree, err := s.resolveSubtasks(*task)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// resolveSubtasks walks parent->children until exhausted. Depth is
// unbounded; cyclic parent links are unsupported input.
func (s *TaskService) resolveSubtasks(task models.Task) (*TaskTree, error) {
	children, err := s.taskRepo.ListChildren(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subtasks: %w", err)
	}

	tree := &TaskTree{Task: task}
	for _, child := range children {
		childTree, err := s.resolveSubtasks(child)
		if err != nil {
			return nil, err
		}
		tree.Subtasks = append(tree.Subtasks, *childTree)
	}
	return tree, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	ParentID    *uint64
}

// CreateTask creates a task owned by the actor.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if !policy.HasCapability(actor.Role, policy.CapTaskCreate) {
		return nil, ErrTaskPermissionDenied
	}
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if input.ParentID != nil {
		if _, err := s.taskRepo.FindByID(*input.ParentID, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to find parent task: %w", err)
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		UserID:      actor.ID,
		ParentID:    input.ParentID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, false)
}

// UpdateTaskInput represents partial updates to a task.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	ParentID    *uint64
	ClearParent bool
}

// UpdateTask applies partial changes after the ownership policy and the
// matching update capability allow it.
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(taskID, false)
	if err != nil {
		return nil, err
	}

	if !policy.CanAct(actor, &task.User) {
		return nil, ErrTaskPermissionDenied
	}
	capability := policy.CapTaskUpdateAny
	if task.UserID == actor.ID {
		capability = policy.CapTaskUpdateOwn
	}
	if !policy.HasCapability(actor.Role, capability) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ClearParent {
		task.ParentID = nil
	} else if input.ParentID != nil {
		if _, err := s.taskRepo.FindByID(*input.ParentID, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to find parent task: %w", err)
		}
		task.ParentID = input.ParentID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, false)
}

// DeleteTask soft-deletes a task after the ownership policy and the
// matching delete capability allow it.
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID, false)
	if err != nil {
		return err
	}

	if !policy.CanAct(actor, &task.User) {
		return ErrTaskPermissionDenied
	}
	capability := policy.CapTaskDeleteAny
	if task.UserID == actor.ID {
		capability = policy.CapTaskDeleteOwn
	}
	if !policy.HasCapability(actor.Role, capability) {
		return ErrTaskPermissionDenied
	}

	if err := s.taskRepo.SoftDelete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findTask(taskID uint64, includeDeleted bool) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, includeDeleted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
