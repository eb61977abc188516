package task

import (
	"time"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// DefaultStatuses is the default set of recognized task statuses.
// The active set is a deployment choice (see modules/task config);
// StatusPending is always the initial status of a new task.
func DefaultStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Task is a user-owned todo item. Soft-deleted tasks stay in the table
// but are invisible to every read and mutation path.
type Task struct {
	ID          string `gorm:"primaryKey;type:text"`
	UserID      string `gorm:"index:idx_tasks_owner_active;not null;type:text"`
	Title       string `gorm:"not null;type:text"`
	Description string `gorm:"type:text"`
	Status      Status `gorm:"not null;type:text;default:pending"`
	IsDeleted   bool   `gorm:"index:idx_tasks_owner_active;not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
