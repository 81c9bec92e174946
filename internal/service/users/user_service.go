package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelin/flightstore/internal/auth"
	"github.com/avelin/flightstore/internal/domain"
	"github.com/avelin/flightstore/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// registerCost trades hash strength for signup latency; password changes use
// the bcrypt default.
const registerCost = 8

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	Phone          string
	DefaultAddress string
}

type ProfileInput struct {
	FullName       string
	Phone          string
	DefaultAddress string
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return nil, "", fmt.Errorf("%w: full name, email and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), registerCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FullName:       input.FullName,
		Email:          input.Email,
		PasswordHash:   string(hash),
		Phone:          input.Phone,
		DefaultAddress: input.DefaultAddress,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input ProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(input.FullName)
	if user.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	user.Phone = input.Phone
	user.DefaultAddress = input.DefaultAddress

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

var _ UserUseCase = (*UserService)(nil)
