package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// TaskService implements owner-scoped task CRUD and listing.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// List returns the owner's tasks newest-first, optionally filtered by status
// and substring search. With Page and Limit both set, the page slice is
// returned together with metadata computed from a separate count over the
// same filter; otherwise the full filtered set is returned and Pagination is
// nil.
func (s *TaskService) List(ctx context.Context, ownerID string, input ports.ListTasksInput) ([]domain.Task, *ports.Pagination, error) {
	q := ports.TaskQuery{
		Status: domain.TaskStatus(input.Status),
		Search: strings.TrimSpace(input.Search),
	}

	paged := input.Page > 0 && input.Limit > 0
	if paged {
		q.Skip = int64(input.Page-1) * int64(input.Limit)
		q.Limit = int64(input.Limit)
	}

	tasks, err := s.repo.Find(ctx, ownerID, q)
	if err != nil {
		return nil, nil, err
	}
	if !paged {
		return tasks, nil, nil
	}

	total, err := s.repo.Count(ctx, ownerID, q)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(input.Limit) - 1) / int64(input.Limit))
	return tasks, &ports.Pagination{
		CurrentPage: input.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       input.Limit,
		HasNextPage: input.Page < totalPages,
		HasPrevPage: input.Page > 1,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, ownerID, taskID)
}

// Create stores a new task owned by ownerID. The title is trimmed, the
// description defaults to empty and the status to todo.
func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}

	task, err := s.repo.Create(ctx, &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("task_id", task.ID).Str("owner_id", ownerID).Msg("task created")
	return task, nil
}

// Update changes only the fields present in patch, under the same ownership
// scope as Get.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	return s.repo.Update(ctx, ownerID, taskID, patch)
}

// Delete removes the task permanently. There is no soft delete.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := s.repo.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}
	s.logger.Debug().Str("task_id", taskID).Str("owner_id", ownerID).Msg("task deleted")
	return nil
}
