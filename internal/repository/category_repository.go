package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
)

// CategoryRepository manages task categories. Every lookup is scoped by
// the owning user id passed in explicitly.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("A category with this name already exists")
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// ExistsByName reports whether the user already has a category with this
// name, excluding excludeID (zero means exclude nothing).
func (r *CategoryRepository) ExistsByName(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Category not found or you do not have access")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

// Rename updates the category name for the owner, keeping the per-user
// uniqueness guarantee.
func (r *CategoryRepository) Rename(ctx context.Context, category *model.Category, name string) error {
	if err := r.db.WithContext(ctx).Model(category).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("A category with this name already exists")
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// DeleteCascade detaches the category from every task referencing it and
// then deletes the category, all inside one transaction. Re-running the
// detach step is a no-op, so a retry after a failed delete stays safe.
func (r *CategoryRepository) DeleteCascade(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where("user_id = ? AND id = ?", userID, id).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Category not found or you do not have access")
			}
			return fmt.Errorf("find category: %w", err)
		}
		if err := tx.Model(&model.Task{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach tasks: %w", err)
		}
		if err := tx.Delete(&model.Category{}, category.ID).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
