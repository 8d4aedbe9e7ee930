package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a self-referencing entity: a task may have a parent and any
// number of subtasks. Deletion is always a flag flip, never a row removal,
// so the explicit IsDeleted column replaces gorm's DeletedAt here.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	UserID      uint64     `gorm:"not null;index" json:"user_id"`
	ParentID    *uint64    `gorm:"index" json:"parent_id"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Parent   *Task  `gorm:"foreignKey:ParentID" json:"-"`
	Subtasks []Task `gorm:"foreignKey:ParentID" json:"-"`
}
