package service

import (
	"context"
	"errors"
	"strings"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
	"honeycomb-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	activity ActivityService
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, activity ActivityService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		activity: activity,
	}
}

func (s *authService) Signup(ctx context.Context, email, displayName, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", domain.NewValidationError("email", "a valid email is required")
	}
	if displayName == "" {
		return nil, "", "", domain.NewValidationError("display_name", "display name is required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.NewValidationError("password", "password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	s.activity.Record(ctx, "user", "register", &user.ID, nil)

	access, refresh, err := s.generateTokens(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	s.activity.Record(ctx, "user", "login", &user.ID, nil)
	return s.generateTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.generateTokens(user)
}

func (s *authService) Logout(ctx context.Context, userID int32) error {
	s.activity.Record(ctx, "user", "logout", &userID, nil)
	return nil
}

func (s *authService) generateTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
