package service

import (
	"context"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ProfileUpdate is the allow-listed set of self-service profile fields.
// Anything else in the request body is ignored.
type ProfileUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserService wraps profile and admin user management.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfile applies the name fields to the caller's own record and
// returns the fresh profile.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error) {
	firstName := strings.TrimSpace(update.FirstName)
	lastName := strings.TrimSpace(update.LastName)
	if err := s.userRepo.UpdateProfile(ctx, user, firstName, lastName); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, user.ID)
}

// ListUsers returns every account. Admin only; the handler gates the role.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListAll(ctx)
}

// GetUser returns one account by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// DeleteUser removes the account and all tasks and categories it owns.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.Delete(ctx, id)
}
