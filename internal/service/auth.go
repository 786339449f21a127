package service

import (
	"context"
	"errors"

	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
)

// ErrInvalidCredentials is returned when no user matches the login pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users repository.UserRepositoryI
}

func NewAuthService(users repository.UserRepositoryI) *AuthService {
	return &AuthService{users: users}
}

// Login returns the user matching username and password.
//
// Passwords are compared in plaintext by the repository query. This is
// a known weakness kept for compatibility with existing rows.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
