package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthService handles registration and login.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register validates the input, enforces username/email uniqueness and
// returns the new user with a signed token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	fields := map[string]string{}
	if err := auth.ValidateUsername(input.Username); err != nil {
		fields["username"] = err.Error()
	}
	if err := auth.ValidateEmail(input.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, "", apperr.NewValidation(fields)
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", apperr.Conflictf("User with this name or email already exists")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(&user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return &user, token, nil
}

// Login verifies the credentials and returns the user with a fresh
// token. Unknown email and wrong password are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	fields := map[string]string{}
	if err := auth.ValidateEmail(strings.TrimSpace(email)); err != nil {
		fields["email"] = err.Error()
	}
	if password == "" {
		fields["password"] = "password cannot be empty"
	}
	if len(fields) > 0 {
		return nil, "", apperr.NewValidation(fields)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", apperr.Unauthorizedf("Invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperr.Unauthorizedf("Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}
