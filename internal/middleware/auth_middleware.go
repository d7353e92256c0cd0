package middleware

import (
	"strings"

	"koala-user-service/internal/service"
	"koala-user-service/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const (
	bearerKeyword = "Bearer"
	bearerLen     = len(bearerKeyword)
	authKey       = "auth"
)

// AuthMiddleware admits requests carrying a valid, not logged out access
// token and stores its claims for GetUser.
func AuthMiddleware(jwtService *service.JwtService, tokenService *service.TokenService, log *logrus.Logger) fiber.Handler {
	tracer := otel.Tracer("AuthMiddleware")
	return func(c *fiber.Ctx) error {
		spanCtx, span := tracer.Start(c.UserContext(), "AuthMiddleware")
		defer span.End()

		logger := log.WithContext(spanCtx)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			logger.Warn("authorization header missing")
			return errcode.ErrAuthorizationHeader
		}

		if !strings.HasPrefix(authHeader, bearerKeyword) {
			logger.Warn("invalid authorization header format")
			return errcode.ErrBearerHeader
		}

		accessToken := strings.TrimSpace(authHeader[bearerLen:])
		if accessToken == "" {
			logger.Warn("access token missing in header")
			return errcode.ErrAccessTokenMissing
		}

		claims, err := jwtService.ValidateAccessToken(spanCtx, accessToken)
		if err != nil {
			logger.WithError(err).Warn("access token is invalid or expired")
			return errcode.ErrTokenIsExpired
		}

		if err := tokenService.IsAccessTokenBlacklisted(spanCtx, accessToken); err != nil {
			logger.WithError(err).Warn("access token rejected by blacklist")
			return err
		}

		c.Locals(authKey, claims)
		return c.Next()
	}
}

// GetUser retrieves user claims from fiber context with type assertion
func GetUser(ctx *fiber.Ctx) *service.Claims {
	return ctx.Locals(authKey).(*service.Claims)
}
