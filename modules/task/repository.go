package task

import (
	"errors"

	domain "github.com/example/task-api/domain/task"
	"gorm.io/gorm"
)

// TaskRepository handles task persistence using GORM. Every read and
// mutation is scoped to the owning user and excludes soft-deleted rows;
// there is no unscoped access path.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// ownedActive scopes a query to live tasks of one user.
func (r *TaskRepository) ownedActive(userID string) *gorm.DB {
	return r.db.Where("user_id = ? AND is_deleted = ?", userID, false)
}

// Create inserts a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a live task by id for the given user.
func (r *TaskRepository) FindOwned(userID, taskID string) (*domain.Task, error) {
	var task domain.Task
	result := r.ownedActive(userID).First(&task, "id = ?", taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListOwned returns all live tasks of the given user in creation order.
// The id tie-break keeps the order stable across calls.
func (r *TaskRepository) ListOwned(userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.ownedActive(userID).Order("created_at, id").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// FindOwnedByIDs returns the live tasks of the given user whose ids appear
// in ids. Unknown ids, ids owned by other users and soft-deleted tasks are
// simply absent from the result; duplicate ids match once.
func (r *TaskRepository) FindOwnedByIDs(userID string, ids []string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.ownedActive(userID).Where("id IN ?", ids).Order("created_at, id").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Save persists all fields of an already-loaded task row.
func (r *TaskRepository) Save(task *domain.Task) error {
	return r.db.Save(task).Error
}
