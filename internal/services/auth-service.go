package services

import (
	"errors"
	"strings"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/internal/repository"
	"github.com/SajiloSewa/registry_service/pkg/ids"
)

type AuthService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	GetProfile(userID string) (*domain.User, error)
	UpdateProfile(userID string, input dto.UpdateProfileRequest) (*domain.User, error)
	IsAdmin(userID string) (bool, error)
}

type authService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewAuthService(repo repository.UserRepository, auth helper.Auth) AuthService {
	return &authService{
		repo: repo,
		auth: auth,
	}
}

func (s *authService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.Phone)

	if email == "" || strings.TrimSpace(input.Password) == "" || fullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.repo.FindUserByEmail(email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// self-registration is always a citizen; admins are seeded
	newUser := &domain.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Phone:        phone,
		Role:         domain.RoleCitizen,
	}

	usr, err := s.repo.CreateUser(newUser)
	if err != nil {
		return nil, err
	}
	return usr, nil
}

func (s *authService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *authService) GetProfile(userID string) (*domain.User, error) {
	return s.repo.FindUserById(userID)
}

func (s *authService) UpdateProfile(userID string, input dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.FullName = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) IsAdmin(userID string) (bool, error) {
	user, err := s.repo.FindUserById(userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
