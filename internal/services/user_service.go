package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// TokenPair is what login, registration and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, TokenPair, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userService struct {
	repo       repositories.UserRepository
	tokens     *auth.TokenManager
	refreshTTL time.Duration
}

func NewUserService(repo repositories.UserRepository, tokens *auth.TokenManager, refreshTTL time.Duration) UserService {
	return &userService{repo: repo, tokens: tokens, refreshTTL: refreshTTL}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, TokenPair, error) {
	user := &models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      "user",
		CreatedAt: time.Now(),
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, TokenPair{}, &ValidationError{Fields: []FieldError{
				{Field: "email", Msg: "Email already registered"},
			}}
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, pair, nil
}

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.User, TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates the stored refresh token and issues a new access token.
// A token that is unknown, already rotated out, or expired fails the same
// way.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	user, err := s.repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefresh
		}
		return TokenPair{}, err
	}
	if user.RefreshExpiresAt == nil || time.Now().After(*user.RefreshExpiresAt) {
		return TokenPair{}, ErrInvalidRefresh
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) issueTokens(ctx context.Context, userID int64) (TokenPair, error) {
	access, err := s.tokens.Generate(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.repo.UpdateRefresh(ctx, userID, refresh, time.Now().Add(s.refreshTTL)); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
