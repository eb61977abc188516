package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/task-api/domain/task"
)

// BulkError describes a store-level failure while mutating one matched task.
// Ids that simply did not match (unknown, foreign-owned or soft-deleted) are
// counted as ignored, not reported here.
type BulkError struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

// BulkOutcome summarizes a bulk mutation. IgnoredCount is the arithmetic
// tail len(task_ids) - matched, so duplicate input ids inflate it; matched
// tasks are processed once regardless of how often their id was supplied.
type BulkOutcome struct {
	UpdatedCount int         `json:"updated_count"`
	IgnoredCount int         `json:"ignored_count"`
	Errors       []BulkError `json:"errors"`
}

// BulkSetStatus applies a status to every live task of userID whose id
// appears in taskIDs. Matched tasks are mutated independently: one failure
// is recorded and the remaining tasks still proceed.
func (s *TaskService) BulkSetStatus(ctx context.Context, userID string, taskIDs []string, rawStatus string) (*BulkOutcome, error) {
	if len(taskIDs) == 0 {
		return nil, ErrEmptyTaskIDs
	}
	status, err := s.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	return s.bulkApply(ctx, userID, taskIDs, func(task *domain.Task) func() {
		oldStatus := task.Status
		task.Status = status
		task.UpdatedAt = time.Now()
		return func() {
			if oldStatus != status {
				s.publishStatusChanged(task, oldStatus)
			}
		}
	})
}

// BulkSoftDelete soft-deletes every live task of userID whose id appears in
// taskIDs, under the same outcome contract as BulkSetStatus.
func (s *TaskService) BulkSoftDelete(ctx context.Context, userID string, taskIDs []string) (*BulkOutcome, error) {
	if len(taskIDs) == 0 {
		return nil, ErrEmptyTaskIDs
	}

	return s.bulkApply(ctx, userID, taskIDs, func(task *domain.Task) func() {
		task.IsDeleted = true
		task.UpdatedAt = time.Now()
		return func() {
			s.publishDeleted(task)
		}
	})
}

// bulkApply resolves the matched set once, then mutates each matched task
// through the same persistence path as the single-task operations. mutate
// edits the task in place and returns the event publication to run after a
// successful save.
func (s *TaskService) bulkApply(_ context.Context, userID string, taskIDs []string, mutate func(*domain.Task) func()) (*BulkOutcome, error) {
	matched, err := s.repo.FindOwnedByIDs(userID, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task ids: %w", err)
	}

	outcome := &BulkOutcome{
		IgnoredCount: len(taskIDs) - len(matched),
		Errors:       []BulkError{},
	}

	for i := range matched {
		task := &matched[i]
		publish := mutate(task)
		if err := s.repo.Save(task); err != nil {
			outcome.Errors = append(outcome.Errors, BulkError{
				TaskID: task.ID,
				Error:  err.Error(),
			})
			continue
		}
		outcome.UpdatedCount++
		publish()
	}

	return outcome, nil
}
