package services

import (
	"context"
	"errors"
	"time"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/auth"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo, jwtService: jwtService}
}

// LoginResult carries the token pair for a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         *models.User
}

// Authenticate checks a username/password pair for the given role and returns
// the matching user. Unknown users and bad passwords both come back as
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			logger.Warn().Str("username", username).Msg("Login attempt for unknown user")
		}
		return nil, err
	}

	if !passwordMatches(user, password) {
		logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// passwordMatches verifies the presented password against the credential's
// stored salt:key hash.
func passwordMatches(user *models.User, password string) bool {
	return auth.CheckPassword(user.Password, password)
}

// Login authenticates and issues an access/refresh token pair. The refresh
// token is stored so it can be redeemed exactly once.
func (s *AuthService) Login(ctx context.Context, username, password string, role models.Role) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password, role)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	// Best-effort sweep; stale tokens only cost table space.
	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to sweep expired refresh tokens")
	}

	logger.Info().Str("username", username).Str("role", string(user.Role)).Msg("User logged in")
	return result, nil
}

// Refresh redeems a refresh token for a fresh pair. The used token is
// deleted; an unknown or expired token fails as invalid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	user, err := s.tokenRepo.GetUserByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, string(user.Role), user.StudentID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.jwtService.RefreshTokenTTL())
	if err := s.tokenRepo.Create(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}
