package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carbon-register/internal/dto"
	"carbon-register/internal/repositories"
	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/service"
	"carbon-register/pkg/utils"
)

func refreshTokenKey(userID uint64) string {
	return fmt.Sprintf("auth:refresh:%d", userID)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, cache: cache, jwtSvc: jwtSvc, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.cache.Get(ctx, refreshTokenKey(claims.UserID))
	if err != nil || stored != refreshToken {
		return nil, apperrors.ErrTokenNotFound
	}

	return s.issueTokens(ctx, claims.UserID)
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserDTO{ID: user.ID, FullName: user.FullName, Email: user.Email}, nil
}

// issueTokens rotates the stored refresh token so only the latest one is
// accepted.
func (s *AuthService) issueTokens(ctx context.Context, userID uint64) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtSvc.GenerateTokens(userID)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err))
		return nil, err
	}
	if err := s.cache.Set(ctx, refreshTokenKey(userID), refresh, s.jwtSvc.GetRefreshTokenTTL()); err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
