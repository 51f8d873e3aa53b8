package service

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
	CategoryID  *uint      `json:"category_id"`
}

// TaskUpdate is a partial update: nil fields stay untouched.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        *[]string  `json:"tags"`
	CategoryID  *uint      `json:"category_id"`
}

// TaskService wraps task-related business logic. The caller's user id is
// threaded explicitly into every repository call so the ownership
// decision stays visible at each step.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	fields := map[string]string{}
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		fields["title"] = "title must be at least 3 characters long"
	}
	if input.Status != "" && !model.ValidStatus(input.Status) {
		fields["status"] = "invalid status value"
	}
	if input.Priority != "" && !model.ValidPriority(input.Priority) {
		fields["priority"] = "invalid priority value"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation(fields)
	}

	// A provided category must belong to the caller; anyone else's
	// category reads as missing.
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
	}
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, userID, task.ID)
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, apperr.NewValidation(map[string]string{"status": "invalid status value"})
	}
	if filter.Priority != "" && !model.ValidPriority(filter.Priority) {
		return nil, apperr.NewValidation(map[string]string{"priority": "invalid priority value"})
	}
	return s.taskRepo.ListByUser(ctx, userID, filter)
}

// ListAllTasks returns every owner's tasks. The role gate in front of
// the admin route is the only thing that may call this.
func (s *TaskService) ListAllTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListAll(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error) {
	fields := map[string]string{}
	if update.Title != nil && len(strings.TrimSpace(*update.Title)) < 3 {
		fields["title"] = "title must be at least 3 characters long"
	}
	if update.Status != nil && !model.ValidStatus(*update.Status) {
		fields["status"] = "invalid status value"
	}
	if update.Priority != nil && !model.ValidPriority(*update.Priority) {
		fields["priority"] = "invalid priority value"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation(fields)
	}

	if update.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = strings.TrimSpace(*update.Description)
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Tags != nil {
		task.Tags = *update.Tags
	}
	if update.CategoryID != nil {
		task.CategoryID = update.CategoryID
	}
	task.Category = nil

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}
