package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
)

// TaskFilter narrows and orders a task listing. Zero values mean "no
// constraint".
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID uint
	SortBy     string // "field:asc" or "field:desc"
}

// Columns a caller may sort by. Anything else falls back to the default
// ordering.
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"title":      true,
	"status":     true,
	"priority":   true,
}

// TaskRepository handles CRUD for tasks. Reads and mutations are scoped
// by the owning user id unless the method says otherwise.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	tasks := make([]model.Task, 0)
	if err := query.Order(orderClause(filter.SortBy)).Preload("Category").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListAll returns every task across all owners, with owner and category
// attached. Admin-only escape hatch; not owner-scoped.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		Preload("Category").
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Task not found")
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// Save persists a task previously loaded through an owner-scoped read.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes an owner-scoped task. Deleting someone else's task (or
// a missing one) reports NotFound.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Task not found or you do not have access")
	}
	return nil
}

// ListDueBetween returns unfinished tasks with a due date inside
// [from, to), across all owners. Feeds the reminder digest.
func (r *TaskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date IS NOT NULL AND due_date >= ? AND due_date < ?", model.StatusCompleted, from, to).
		Preload("User").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}

// ListOverdue returns unfinished tasks whose due date is before now,
// across all owners.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", model.StatusCompleted, now).
		Preload("User").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

func orderClause(sortBy string) string {
	if sortBy == "" {
		return "created_at DESC"
	}
	parts := strings.SplitN(sortBy, ":", 2)
	column := parts[0]
	if !sortableColumns[column] {
		return "created_at DESC"
	}
	direction := "ASC"
	if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
