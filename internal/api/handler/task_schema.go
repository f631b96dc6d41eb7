package handler

import (
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status"      validate:"omitempty,oneof=todo in-progress completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status"      validate:"omitempty,oneof=todo in-progress completed"`
}

type listTasksQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=todo in-progress completed"`
	Search string `query:"search"`
	Page   int    `query:"page"   validate:"omitempty,min=1"`
	Limit  int    `query:"limit"  validate:"omitempty,min=1,max=100"`
}

// pagedTasksResponse is the enveloped shape used only when both page and
// limit are supplied; otherwise the list endpoint returns a bare array.
type pagedTasksResponse struct {
	Success    bool             `json:"success"`
	Data       []domain.Task    `json:"data"`
	Pagination ports.Pagination `json:"pagination"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
