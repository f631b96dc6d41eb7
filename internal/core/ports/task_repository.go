package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// TaskQuery narrows a task listing. Zero values mean the filter is not
// applied. Search is a case-insensitive substring match over title and
// description. Limit 0 returns the full filtered set.
type TaskQuery struct {
	Status domain.TaskStatus
	Search string
	Skip   int64
	Limit  int64
}

// TaskPatch carries the fields of a partial task update. Nil pointers mean
// the field is left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskRepository defines the persistence operations for tasks. Every lookup
// and mutation is scoped by the owning user's id; a miss under that scope is
// domain.ErrTaskNotFound regardless of whether the task exists for someone
// else.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	// Find returns tasks newest-first.
	Find(ctx context.Context, ownerID string, q TaskQuery) ([]domain.Task, error)
	// Count counts the tasks Find would return with the same query, ignoring
	// Skip and Limit.
	Count(ctx context.Context, ownerID string, q TaskQuery) (int64, error)
	Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	EnsureIndexes(ctx context.Context) error
}
