package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository"
	"kerramientas-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, username, fullName, email, password string) (*domain.User, string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, "", "", domain.NewValidationError("username", "required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", domain.NewValidationError("email", "must be a valid address")
	}
	if len(password) < 8 {
		return nil, "", "", domain.NewValidationError("password", "must be at least 8 characters")
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", domain.NewValidationError("email", "already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", domain.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", domain.NewUnauthorizedError("invalid credentials")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", domain.NewUnauthorizedError("refresh token required")
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.NewUnauthorizedError("unknown user")
	}
	return s.tokens.GenerateAccessToken(user.ID, user.Email)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
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
