package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"koala-user-service/internal/constant"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/utils/errcode"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tokenStore is implemented by repository.TokenRepository.
type tokenStore interface {
	SetRefreshToken(ctx context.Context, userID, tokenHash string, ttl time.Duration) error
	ConsumeRefreshToken(ctx context.Context, userID, tokenHash string) (bool, error)
	AddToBlacklist(ctx context.Context, tokenHash string, tokenType constant.TokenType, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenHash string, tokenType constant.TokenType) (bool, error)
}

// TokenService issues token pairs and tracks their server-side state: one
// live refresh token per user and a blacklist of logged out access tokens.
// Only sha256 digests of tokens reach redis.
type TokenService struct {
	jwtService *JwtService
	store      tokenStore
	log        *logrus.Logger
	tracer     trace.Tracer
}

func NewTokenService(jwtService *JwtService, store tokenStore, log *logrus.Logger) *TokenService {
	return &TokenService{jwtService, store, log, otel.Tracer("TokenService")}
}

// IssueTokenPair signs an access and a refresh token for user and makes the
// refresh token the only one accepted for that user.
func (s *TokenService) IssueTokenPair(ctx context.Context, user *dto.UserDto) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.IssueTokenPair")
	defer span.End()

	logger := s.log.WithContext(spanCtx).WithField("user_id", user.ID)

	accessToken, err := s.jwtService.CreateAccessToken(spanCtx, user)
	if err != nil {
		logger.WithError(err).Error("Error generating access token")
		return nil, errcode.ErrAccessTokenGeneration
	}

	refreshToken, err := s.jwtService.CreateRefreshToken(spanCtx, user)
	if err != nil {
		logger.WithError(err).Error("Error generating refresh token")
		return nil, errcode.ErrRefreshTokenGeneration
	}

	if err := s.SaveRefreshToken(spanCtx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SaveRefreshToken stores the digest of refreshToken for userID until the
// token expires.
func (s *TokenService) SaveRefreshToken(ctx context.Context, userID, refreshToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.SaveRefreshToken")
	defer span.End()

	logger := s.log.WithContext(spanCtx).WithField("user_id", userID)

	claims, err := s.jwtService.ValidateRefreshToken(spanCtx, refreshToken)
	if err != nil {
		logger.WithError(err).Error("Refusing to store an invalid refresh token")
		return errcode.ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.store.SetRefreshToken(spanCtx, userID, hashToken(refreshToken), ttl); err != nil {
		logger.WithError(err).Error("Failed to store refresh token")
		return errcode.ErrTokenStore
	}

	return nil
}

// ConsumeRefreshToken accepts refreshToken once, and only while it is the
// one stored for userID. A consumed token is no longer stored.
func (s *TokenService) ConsumeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.ConsumeRefreshToken")
	defer span.End()

	logger := s.log.WithContext(spanCtx).WithField("user_id", userID)

	consumed, err := s.store.ConsumeRefreshToken(spanCtx, userID, hashToken(refreshToken))
	if err != nil {
		logger.WithError(err).Error("Failed to consume refresh token")
		return errcode.ErrTokenStore
	}
	if !consumed {
		logger.Warn("Refresh token is not the current one")
		return errcode.ErrInvalidToken
	}

	return nil
}

// BlacklistAccessToken rejects accessToken until it expires. Tokens that
// are already expired or invalid are skipped since nothing accepts them.
func (s *TokenService) BlacklistAccessToken(ctx context.Context, accessToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.BlacklistAccessToken")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	claims, err := s.jwtService.ValidateAccessToken(spanCtx, accessToken)
	if err != nil {
		logger.WithError(err).Info("Access token already unusable, not blacklisted")
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.store.AddToBlacklist(spanCtx, hashToken(accessToken), constant.TokenTypeAccess, ttl); err != nil {
		logger.WithError(err).Error("Failed to blacklist access token")
		return errcode.ErrTokenStore
	}

	return nil
}

// IsAccessTokenBlacklisted returns errcode.ErrTokenBlacklisted for logged
// out tokens and nil otherwise.
func (s *TokenService) IsAccessTokenBlacklisted(ctx context.Context, accessToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "TokenService.IsAccessTokenBlacklisted")
	defer span.End()

	blacklisted, err := s.store.IsBlacklisted(spanCtx, hashToken(accessToken), constant.TokenTypeAccess)
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to read blacklist")
		return errcode.ErrTokenStore
	}
	if blacklisted {
		return errcode.ErrTokenBlacklisted
	}

	return nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
