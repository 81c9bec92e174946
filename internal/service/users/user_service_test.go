package users

import (
	"context"
	"testing"
	"time"

	"github.com/avelin/flightstore/internal/auth"
	"github.com/avelin/flightstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func TestUserService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// the raw password must never be stored
		return u.Email == "ann@example.com" &&
			u.PasswordHash != "hunter2" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)

	user, token, err := service.Register(context.Background(), RegisterInput{
		FullName: "Ann Carter",
		Email:    "  Ann@Example.COM ",
		Password: "hunter2",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotEmpty(t, token)

	claims, err := testTokens().Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)

	repo.AssertExpectations(t)
}

func TestUserService_Register_missingFields(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	_, _, err := service.Register(context.Background(), RegisterInput{Email: "ann@example.com"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login_wrongPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "ann@example.com").
		Return(&domain.User{ID: 1, Email: "ann@example.com", PasswordHash: string(hash)}, nil)

	_, _, err := service.Login(context.Background(), "ann@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_Login_unknownEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

	_, _, err := service.Login(context.Background(), "ghost@example.com", "whatever")

	// unknown email and wrong password look the same to the caller
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, PasswordHash: string(hash)}, nil)
	repo.On("UpdatePassword", mock.Anything, int64(1), mock.MatchedBy(func(newHash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-pass")) == nil
	})).Return(nil)

	err := service.ChangePassword(context.Background(), 1, "old-pass", "new-pass")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_ChangePassword_wrongCurrent(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, testTokens())

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, PasswordHash: string(hash)}, nil)

	err := service.ChangePassword(context.Background(), 1, "not-it", "new-pass")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
