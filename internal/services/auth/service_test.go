package auth

import (
	"context"
	"testing"

	"handshake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: "ana@example.com", Password: string(hashed), Name: "Ana"}
	user.ID = 1
	return user
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("issues a token and records the login", func(t *testing.T) {
		users := new(MockUserRepo)
		user := hashedUser(t, "correct horse")

		users.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return !u.LastLoginAt.IsZero()
		})).Return(nil)

		s := NewService(users)
		token, got, err := s.Login(context.Background(), "ana@example.com", "correct horse")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "ana@example.com").Return(hashedUser(t, "correct horse"), nil)

		s := NewService(users)
		_, _, err := s.Login(context.Background(), "ana@example.com", "battery staple")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, assert.AnError)

		s := NewService(users)
		_, _, err := s.Login(context.Background(), "ghost@example.com", "anything")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, assert.AnError)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Password != "correct horse" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("correct horse")) == nil
		})).Return(nil)

		s := NewService(users)
		user, err := s.Register(context.Background(), "Ana", "ana@example.com", "correct horse")

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", mock.Anything, "ana@example.com").Return(hashedUser(t, "x"), nil)

		s := NewService(users)
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "whatever")

		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
