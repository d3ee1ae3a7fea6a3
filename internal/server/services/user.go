// Package services contains the application logic sitting between the HTTP
// handlers and the repositories.
package services

import (
	"context"

	"linkarchive/internal/server/auth"
	"linkarchive/internal/server/models"
	"linkarchive/internal/server/repositories/users"
)

// UserService creates locally managed accounts.
type UserService struct {
	users users.Repository
}

func NewUserService(users users.Repository) *UserService {
	return &UserService{users: users}
}

// Create hashes the password and inserts the user. A taken name surfaces as
// *common.DuplicateNameError. The plaintext is never stored or logged.
func (s *UserService) Create(ctx context.Context, name string, password []byte) (*models.User, error) {
	hash, err := auth.HashPassword(ctx, password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, name, hash)
}
