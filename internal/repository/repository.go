package repository

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/policy"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID, regardless of account status
	FindByID(id uint64) (*models.User, error)

	// FindByEmail resolves an email to its account, preferring the
	// active row over banned/deleted ones
	FindByEmail(email string) (*models.User, error)

	// ActiveEmailExists reports whether an active account other than
	// excludeID already uses the email
	ActiveEmailExists(email string, excludeID uint64) (bool, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// List returns all users, including banned and deleted accounts
	List() ([]models.User, error)
}

// SessionRepository defines the interface for the login audit ledger
type SessionRepository interface {
	// Create appends a session record, assigning the per-user
	// connection number. The count+1 read is not atomic; concurrent
	// logins may produce duplicate numbers, which the ledger tolerates.
	Create(session *models.UserSession) error

	// ListByUser returns a user's sessions, newest first
	ListByUser(userID uint64) ([]models.UserSession, error)

	// DeleteByUser removes all of a user's sessions (the logout path)
	DeleteByUser(userID uint64) error

	// TouchLatest updates last_activity_at on the user's newest session
	TouchLatest(userID uint64) error
}

// TokenRepository defines the interface for the refresh-token blacklist
type TokenRepository interface {
	// Revoke blacklists a refresh token by jti until it expires
	Revoke(jti string, userID uint64, expiresAt time.Time) error

	// IsRevoked reports whether the jti has been blacklisted
	IsRevoked(jti string) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with its owner preloaded; soft-deleted
	// tasks are excluded unless includeDeleted is set
	FindByID(id uint64, includeDeleted bool) (*models.Task, error)

	// List retrieves tasks visible under the filter's scope
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListChildren returns the non-deleted direct subtasks of a task
	ListChildren(parentID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// SoftDelete flips the deletion flag; rows are never removed
	SoftDelete(id uint64) error
}

// TaskFilter holds the scope and filters for listing tasks
type TaskFilter struct {
	Scope          policy.ListScope
	OwnerRole      *models.RoleName // optional role-name narrowing
	Status         *models.TaskStatus
	IncludeDeleted bool
	Page           int
	PageSize       int
}
