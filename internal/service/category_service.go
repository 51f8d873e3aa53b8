package service

import (
	"context"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CategoryService provides owner-scoped category management.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation(map[string]string{"name": "name cannot be empty"})
	}

	taken, err := s.repo.ExistsByName(ctx, userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflictf("A category with this name already exists")
	}

	category := model.Category{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation(map[string]string{"name": "name cannot be empty"})
	}

	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, userID, name, category.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflictf("A category with this name already exists")
	}

	if err := s.repo.Rename(ctx, category, name); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory detaches every referencing task and removes the
// category in one transaction.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uint) error {
	return s.repo.DeleteCascade(ctx, userID, id)
}
