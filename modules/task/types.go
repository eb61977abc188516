package task

import (
	"context"
	"time"

	domain "github.com/example/task-api/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields
// are left unchanged.
type UpdateTaskRequest struct {
	UserID      string  `json:"user_id"`
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// SetStatusRequest is the request for a status transition.
type SetStatusRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// DeleteTaskRequest is the request for soft-deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for soft-deleting a task.
type DeleteTaskResponse struct {
	ID        string `json:"id"`
	IsDeleted bool   `json:"is_deleted"`
}

// BulkSetStatusRequest is the request for a bulk status change.
type BulkSetStatusRequest struct {
	UserID  string   `json:"user_id"`
	TaskIDs []string `json:"task_ids"`
	Status  string   `json:"status"`
}

// BulkDeleteRequest is the request for a bulk soft delete.
type BulkDeleteRequest struct {
	UserID  string   `json:"user_id"`
	TaskIDs []string `json:"task_ids"`
}

// BulkOutcomeResponse is the per-operation summary of a bulk mutation.
type BulkOutcomeResponse struct {
	UpdatedCount int         `json:"updated_count"`
	IgnoredCount int         `json:"ignored_count"`
	Errors       []BulkError `json:"errors"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPort defines the interface for task operations. The HTTP layer uses
// it to reach the task module; userID always comes from a validated token.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, userID, taskID string) (*TaskResponse, error)
	ListTasks(ctx context.Context, userID string) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	SetTaskStatus(ctx context.Context, userID, taskID, status string) (*TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID string) (*DeleteTaskResponse, error)
	BulkSetStatus(ctx context.Context, req *BulkSetStatusRequest) (*BulkOutcomeResponse, error)
	BulkDelete(ctx context.Context, req *BulkDeleteRequest) (*BulkOutcomeResponse, error)
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
