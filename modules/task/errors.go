package task

import "errors"

// Sentinel errors for task operations.
var (
	// ErrTaskNotFound is returned when a task does not exist for the
	// requesting user. Tasks owned by other users and soft-deleted tasks
	// are reported the same way.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when a task is created without a title.
	ErrEmptyTitle = errors.New("title is required")

	// ErrInvalidStatus is returned when a status value is not a member of
	// the configured status set.
	ErrInvalidStatus = errors.New("unrecognized task status")

	// ErrEmptyTaskIDs is returned when a bulk operation receives no task ids.
	ErrEmptyTaskIDs = errors.New("task_ids must be a non-empty list")
)
