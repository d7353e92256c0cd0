package service

import (
	"context"
	"errors"

	"koala-user-service/internal/dto"
	"koala-user-service/internal/dto/converter"
	"koala-user-service/internal/utils/errcode"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// AuthService manages sessions after login: refresh token rotation and logout.
type AuthService struct {
	jwtService     *JwtService
	tokenService   *TokenService
	userRepository userStore
	logger         *logrus.Logger
	tracer         trace.Tracer
}

func NewAuthService(jwtService *JwtService, tokenService *TokenService, userRepository userStore, logger *logrus.Logger) *AuthService {
	return &AuthService{jwtService, tokenService, userRepository, logger, otel.Tracer("AuthService")}
}

// RefreshToken exchanges the current refresh token of a user for a new
// pair. The presented token is accepted once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.RefreshToken")
	defer span.End()

	logger := s.logger.WithContext(spanCtx)

	claims, err := s.jwtService.ValidateRefreshToken(spanCtx, refreshToken)
	if err != nil {
		logger.WithError(err).Warn("Invalid refresh token")
		return nil, errcode.ErrInvalidToken
	}

	if err := s.tokenService.ConsumeRefreshToken(spanCtx, claims.UUID, refreshToken); err != nil {
		return nil, err
	}

	// reload so renamed users get fresh claims
	user, err := s.userRepository.FindByID(spanCtx, claims.UUID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.WithField("user_id", claims.UUID).Warn("Refresh token of a deleted user")
		return nil, errcode.ErrUserNotFound
	}
	if err != nil {
		logger.WithError(err).Error("Failed to load user for refresh")
		return nil, errcode.ErrDatabaseError
	}

	return s.tokenService.IssueTokenPair(spanCtx, converter.UserToDto(user))
}

// Logout ends the session that refreshToken currently belongs to: the
// refresh token is consumed and the access token blacklisted. Both tokens
// must belong to the same user.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	logger := s.logger.WithContext(spanCtx)

	claims, err := s.jwtService.ValidateRefreshToken(spanCtx, refreshToken)
	if err != nil {
		logger.WithError(err).Warn("Logout with an invalid refresh token")
		return errcode.ErrInvalidToken
	}

	// an expired access token has nothing left to blacklist, so only a live one is compared
	if accessClaims, err := s.jwtService.ValidateAccessToken(spanCtx, accessToken); err == nil && accessClaims.UUID != claims.UUID {
		logger.WithField("user_id", claims.UUID).Warn("Logout with tokens of different users")
		return errcode.ErrInvalidToken
	}

	if err := s.tokenService.ConsumeRefreshToken(spanCtx, claims.UUID, refreshToken); err != nil {
		return err
	}

	return s.tokenService.BlacklistAccessToken(spanCtx, accessToken)
}
