package errcode

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Authentication Errors
	ErrUserNotFound         = errors.New("user not found")
	ErrBadCredentials       = errors.New("password does not match")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenBlacklisted     = errors.New("token is blacklisted")
	ErrAuthorizationHeader  = errors.New("authorization header is required")
	ErrBearerHeader         = errors.New("authorization header must use the Bearer scheme")
	ErrAccessTokenMissing   = errors.New("access token is missing")
	ErrTokenIsExpired       = errors.New("token is expired")
	ErrUnexpectedSignMethod = errors.New("unexpected signing method")

	// Registration Errors
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordEncryption = errors.New("password encryption error")

	// Token Errors
	ErrAccessTokenGeneration  = errors.New("could not generate access token")
	ErrRefreshTokenGeneration = errors.New("could not generate refresh token")
	ErrTokenStore             = errors.New("could not store token")

	// Common Errors
	ErrDatabaseError       = errors.New("database error")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadRequest          = errors.New("bad request")
	ErrTooManyRequests     = errors.New("too many requests")
)

// errorStatusMap maps application errors to their respective HTTP status codes
var errorStatusMap = map[error]int{
	// 401 Unauthorized Errors
	ErrBadCredentials:       fiber.StatusUnauthorized,
	ErrInvalidToken:         fiber.StatusUnauthorized,
	ErrTokenBlacklisted:     fiber.StatusUnauthorized,
	ErrAuthorizationHeader:  fiber.StatusUnauthorized,
	ErrBearerHeader:         fiber.StatusUnauthorized,
	ErrAccessTokenMissing:   fiber.StatusUnauthorized,
	ErrTokenIsExpired:       fiber.StatusUnauthorized,
	ErrUnexpectedSignMethod: fiber.StatusUnauthorized,

	// 404 Not Found Errors
	ErrUserNotFound: fiber.StatusNotFound,

	// 409 Conflict Errors
	ErrUserAlreadyExists: fiber.StatusConflict,

	// 500 Internal Server Errors
	ErrPasswordEncryption:     fiber.StatusInternalServerError,
	ErrAccessTokenGeneration:  fiber.StatusInternalServerError,
	ErrRefreshTokenGeneration: fiber.StatusInternalServerError,
	ErrTokenStore:             fiber.StatusInternalServerError,
	ErrDatabaseError:          fiber.StatusInternalServerError,
	ErrInternalServerError:    fiber.StatusInternalServerError,

	ErrBadRequest:      fiber.StatusBadRequest,
	ErrTooManyRequests: fiber.StatusTooManyRequests,
}

// GetHTTPStatus retrieves the HTTP status code for a given error.
// Wrapped errors resolve to the status of the sentinel they wrap.
func GetHTTPStatus(err error) (int, bool) {
	for sentinel, statusCode := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return statusCode, true
		}
	}
	return 0, false
}
