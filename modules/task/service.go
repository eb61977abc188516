package task

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/task-api/domain/task"
	"github.com/example/task-api/events"
	"github.com/example/task-api/ident"
	"github.com/go-monolith/mono"
)

// TaskService handles task business logic. All operations take the owning
// user's id and only ever see that user's live tasks.
type TaskService struct {
	repo     *TaskRepository
	ids      *ident.Generator
	statuses map[domain.Status]bool
	eventBus mono.EventBus
}

// NewTaskService creates a new TaskService recognizing the given status set.
func NewTaskService(repo *TaskRepository, statuses []domain.Status) *TaskService {
	allowed := make(map[domain.Status]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	return &TaskService{
		repo:     repo,
		ids:      ident.MustGenerator(ident.TaskPrefix),
		statuses: allowed,
	}
}

// SetEventBus wires the event bus for lifecycle event publication.
// Without a bus the service works normally and publishes nothing.
func (s *TaskService) SetEventBus(bus mono.EventBus) {
	s.eventBus = bus
}

// ParseStatus validates a raw status value against the configured set.
func (s *TaskService) ParseStatus(raw string) (domain.Status, error) {
	status := domain.Status(raw)
	if !s.statuses[status] {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Create creates a new task owned by userID. Status starts as pending.
func (s *TaskService) Create(_ context.Context, userID, title, description string) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now()
	task := &domain.Task{
		ID:          s.ids.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishCreated(task)
	return task, nil
}

// Get returns a live task owned by userID.
func (s *TaskService) Get(_ context.Context, userID, taskID string) (*domain.Task, error) {
	return s.repo.FindOwned(userID, taskID)
}

// List returns all live tasks owned by userID in creation order.
func (s *TaskService) List(_ context.Context, userID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListOwned(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateFields carries the partial update payload; nil fields are left
// untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *string
}

// Update applies a partial update to a live task owned by userID.
func (s *TaskService) Update(_ context.Context, userID, taskID string, fields UpdateFields) (*domain.Task, error) {
	task, err := s.repo.FindOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	var newStatus *domain.Status
	if fields.Status != nil {
		status, err := s.ParseStatus(*fields.Status)
		if err != nil {
			return nil, err
		}
		newStatus = &status
	}
	if fields.Title != nil {
		if strings.TrimSpace(*fields.Title) == "" {
			return nil, ErrEmptyTitle
		}
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}

	oldStatus := task.Status
	if newStatus != nil {
		task.Status = *newStatus
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if newStatus != nil && oldStatus != *newStatus {
		s.publishStatusChanged(task, oldStatus)
	}
	return task, nil
}

// SetStatus transitions a live task owned by userID to the given status.
func (s *TaskService) SetStatus(_ context.Context, userID, taskID, rawStatus string) (*domain.Task, error) {
	status, err := s.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = status
	task.UpdatedAt = time.Now()

	if err := s.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	if oldStatus != status {
		s.publishStatusChanged(task, oldStatus)
	}
	return task, nil
}

// SoftDelete marks a live task owned by userID as deleted. The task then
// disappears from every read and mutation path; a second delete reports
// ErrTaskNotFound like any other lookup.
func (s *TaskService) SoftDelete(_ context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.IsDeleted = true
	task.UpdatedAt = time.Now()

	if err := s.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishDeleted(task)
	return task, nil
}

// Event publication is best-effort; a failed publish never fails the
// operation that triggered it.

func (s *TaskService) publishCreated(task *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
	}
}

func (s *TaskService) publishStatusChanged(task *domain.Task, oldStatus domain.Status) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskStatusChangedEvent{
		TaskID:    task.ID,
		UserID:    task.UserID,
		OldStatus: string(oldStatus),
		NewStatus: string(task.Status),
		ChangedAt: task.UpdatedAt,
	}
	if err := events.TaskStatusChangedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskStatusChanged event for task %s: %v", task.ID, err)
	}
}

func (s *TaskService) publishDeleted(task *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    task.ID,
		UserID:    task.UserID,
		DeletedAt: task.UpdatedAt,
	}
	if err := events.TaskDeletedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", task.ID, err)
	}
}
