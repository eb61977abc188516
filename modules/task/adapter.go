package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services. container is the
// ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// call invokes one of the task module's request-reply services. It is a
// package-level generic function because methods cannot have type parameters,
// and helper.CallRequestReplyService needs a concrete *T2 to infer its types.
func call[T any](a *taskAdapter, ctx context.Context, service string, req any, resp *T) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(a, ctx, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask retrieves an owned task via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, userID, taskID string) (*TaskResponse, error) {
	req := GetTaskRequest{UserID: userID, TaskID: taskID}
	var resp TaskResponse
	if err := call(a, ctx, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks lists a user's live tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, userID string) (*ListTasksResponse, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := call(a, ctx, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTask applies a partial update via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(a, ctx, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetTaskStatus transitions a task via the set-task-status service.
func (a *taskAdapter) SetTaskStatus(ctx context.Context, userID, taskID, status string) (*TaskResponse, error) {
	req := SetStatusRequest{UserID: userID, TaskID: taskID, Status: status}
	var resp TaskResponse
	if err := call(a, ctx, "set-task-status", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask soft-deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, userID, taskID string) (*DeleteTaskResponse, error) {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp DeleteTaskResponse
	if err := call(a, ctx, "delete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkSetStatus applies a bulk status change via the bulk-set-status service.
func (a *taskAdapter) BulkSetStatus(ctx context.Context, req *BulkSetStatusRequest) (*BulkOutcomeResponse, error) {
	var resp BulkOutcomeResponse
	if err := call(a, ctx, "bulk-set-status", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkDelete applies a bulk soft delete via the bulk-delete service.
func (a *taskAdapter) BulkDelete(ctx context.Context, req *BulkDeleteRequest) (*BulkOutcomeResponse, error) {
	var resp BulkOutcomeResponse
	if err := call(a, ctx, "bulk-delete", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
