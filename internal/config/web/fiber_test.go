package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"koala-user-service/internal/config/env"
	"koala-user-service/internal/config/validation"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// helper to build a new app with minimal config
func newTestApp() *fiber.App {
	cfg := &env.Config{}
	cfg.App.Name = "TestApp"
	cfg.Web.Prefork = false
	// Use a specific origin to avoid CORS middleware panic for insecure wildcard + credentials
	cfg.Web.Cors.AllowOrigins = "http://example.com"

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewFiber(log, cfg)
}

// Table-driven tests for the global error handler behavior
func TestNewFiber_ErrorHandler(t *testing.T) {
	type testcase struct {
		name         string
		handler      fiber.Handler
		expectStatus int
		assert       func(t *testing.T, resp *http.Response)
	}

	cases := []testcase{
		{
			name:         "ErrcodeMapping_UserNotFound",
			handler:      func(c *fiber.Ctx) error { return errcode.ErrUserNotFound },
			expectStatus: http.StatusNotFound,
			assert: func(t *testing.T, resp *http.Response) {
				var out dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				require.Equal(t, "user not found", out.Message)
				require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			},
		},
		{
			name:         "ErrcodeMapping_BadCredentials",
			handler:      func(c *fiber.Ctx) error { return errcode.ErrBadCredentials },
			expectStatus: http.StatusUnauthorized,
			assert: func(t *testing.T, resp *http.Response) {
				var out dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				require.Equal(t, "password does not match", out.Message)
			},
		},
		{
			name: "ValidationError_MapsTo400",
			handler: func(c *fiber.Ctx) error {
				return &validation.ValidationError{Message: "ignored", Errors: map[string][]string{"nickname": {"nickname is required"}}}
			},
			expectStatus: http.StatusBadRequest,
			assert: func(t *testing.T, resp *http.Response) {
				var out dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				require.Equal(t, "Validation failed", out.Message)
				require.Contains(t, out.Errors["nickname"], "nickname is required")
			},
		},
		{
			name:         "FiberError_UsesMessageAndStatus",
			handler:      func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "invalid body") },
			expectStatus: http.StatusBadRequest,
			assert: func(t *testing.T, resp *http.Response) {
				var out dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				require.Equal(t, "invalid body", out.Message)
			},
		},
		{
			name:         "DefaultFallback_InternalServer",
			handler:      func(c *fiber.Ctx) error { return fmt.Errorf("unexpected") },
			expectStatus: http.StatusInternalServerError,
			assert: func(t *testing.T, resp *http.Response) {
				var out dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				require.Equal(t, "Internal server error", out.Message)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", tc.handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, tc.expectStatus, resp.StatusCode)
			if tc.assert != nil {
				tc.assert(t, resp)
			}
		})
	}
}

// CORS preflight should set expected headers from middleware configuration
func TestNewFiber_CORS_Preflight(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

// Recover middleware should prevent panics and delegate to global error handler
func TestNewFiber_RecoverMiddleware(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "Internal server error", out.Message)
}
