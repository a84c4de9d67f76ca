// Package service contains the business logic between handlers and
// repositories.
package service

import (
	"context"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/repository"
	"campusnet/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SignupInput carries the fields collected at registration.
type SignupInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	College  string `json:"college"`
}

// UserService handles registration, authentication and profile lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register validates the signup input, hashes the password and persists the
// user. Every failed validation rule is reported at once.
func (s *UserService) Register(ctx context.Context, input SignupInput) (*models.User, error) {
	if violations := validation.ValidateSignup(input.Name, input.Username, input.Password, input.Age); len(violations) > 0 {
		return nil, models.NewValidationErrors(violations)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     input.Name,
		Username: input.Username,
		Password: string(hashed),
		Age:      input.Age,
		College:  input.College,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies a username and password pair. Unknown usernames and
// wrong passwords produce the same error so the response does not reveal
// which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetByUsername resolves a profile or reports NOT_FOUND.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// Search returns users whose username starts with the query.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.users.Search(ctx, query, limit)
}
