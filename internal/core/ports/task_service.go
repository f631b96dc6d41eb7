package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// ListTasksInput narrows and pages a task listing. Page 0 means no paging:
// the full filtered set is returned and Pagination is nil.
type ListTasksInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// Pagination is the metadata block attached to paged list responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// CreateTaskInput carries the validated task creation payload. Status
// defaults to todo when empty; the owner always comes from the authenticated
// caller, never from the payload.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
}

type TaskService interface {
	List(ctx context.Context, ownerID string, input ListTasksInput) ([]domain.Task, *Pagination, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
