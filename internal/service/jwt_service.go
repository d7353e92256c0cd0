package service

import (
	"context"
	"time"

	"koala-user-service/internal/config/env"
	"koala-user-service/internal/constant"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/utils/errcode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Claims struct {
	UUID     string             `json:"uuid"`
	Email    string             `json:"email"`
	Nickname string             `json:"nickname"`
	Type     constant.TokenType `json:"type"`
	jwt.RegisteredClaims
}

type JwtService struct {
	log           *logrus.Logger
	config        *env.Config
	tracer        trace.Tracer
	accessMethod  jwt.SigningMethod
	refreshMethod jwt.SigningMethod
}

func NewJwtService(log *logrus.Logger, config *env.Config) *JwtService {
	return &JwtService{
		log:           log,
		config:        config,
		tracer:        otel.Tracer("JwtService"),
		accessMethod:  jwt.SigningMethodHS256,
		refreshMethod: jwt.SigningMethodHS256,
	}
}

// SetAccessMethod replaces the signing method used for access tokens.
func (j *JwtService) SetAccessMethod(method jwt.SigningMethod) {
	j.accessMethod = method
}

// SetRefreshMethod replaces the signing method used for refresh tokens.
func (j *JwtService) SetRefreshMethod(method jwt.SigningMethod) {
	j.refreshMethod = method
}

// CreateAccessToken creates a short-lived JWT access token
func (j *JwtService) CreateAccessToken(ctx context.Context, user *dto.UserDto) (string, error) {
	_, span := j.tracer.Start(ctx, "CreateAccessToken")
	defer span.End()

	claims := j.newClaims(user, constant.TokenTypeAccess, j.config.GetAccessTokenExpiration())
	return jwt.NewWithClaims(j.accessMethod, claims).SignedString([]byte(j.config.GetAccessSecret()))
}

// CreateRefreshToken creates a long-lived JWT refresh token
func (j *JwtService) CreateRefreshToken(ctx context.Context, user *dto.UserDto) (string, error) {
	_, span := j.tracer.Start(ctx, "CreateRefreshToken")
	defer span.End()

	claims := j.newClaims(user, constant.TokenTypeRefresh, j.config.GetRefreshTokenExpiration())
	return jwt.NewWithClaims(j.refreshMethod, claims).SignedString([]byte(j.config.GetRefreshSecret()))
}

func (j *JwtService) ValidateAccessToken(ctx context.Context, token string) (*Claims, error) {
	spanCtx, span := j.tracer.Start(ctx, "ValidateAccessToken")
	defer span.End()

	return j.validateToken(spanCtx, token, j.config.GetAccessSecret(), constant.TokenTypeAccess)
}

func (j *JwtService) ValidateRefreshToken(ctx context.Context, token string) (*Claims, error) {
	spanCtx, span := j.tracer.Start(ctx, "ValidateRefreshToken")
	defer span.End()

	return j.validateToken(spanCtx, token, j.config.GetRefreshSecret(), constant.TokenTypeRefresh)
}

// newClaims gives every token a fresh jti so two tokens issued within the
// same second never collide.
func (j *JwtService) newClaims(user *dto.UserDto, tokenType constant.TokenType, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		UUID:     user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

// validateToken verifies a JWT token and returns the claims if valid
func (j *JwtService) validateToken(ctx context.Context, tokenString, secretKey string, want constant.TokenType) (*Claims, error) {
	logger := j.log.WithContext(ctx)
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.Error("Token method not match")
			return nil, errcode.ErrUnexpectedSignMethod
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to parse with claims")
		return nil, err
	}

	if !token.Valid {
		logger.Warn("Token invalid")
		return nil, errcode.ErrInvalidToken
	}

	if claims.Type != want {
		logger.WithField("type", claims.Type).Warn("Token type mismatch")
		return nil, errcode.ErrInvalidToken
	}

	return claims, nil
}
