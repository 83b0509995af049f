// Package auth is a deliberately thin identity layer: it trusts the
// credentials supplied at login and exists to put a signed user identity
// on every request, so transaction role checks have something real to
// check against.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	users repositories.UserRepository
}

// NewService creates a new auth service
func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Status:   "active",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user.LastLoginAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		// Login still succeeds; the timestamp is bookkeeping.
		log.Printf("failed to record last login for user %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
