package controller

import (
	"koala-user-service/internal/config/validation"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/dto/converter"
	"koala-user-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type AuthController struct {
	UserService *service.UserService
	AuthService *service.AuthService
	Logger      *logrus.Logger
	Validation  *validation.Validation
	Tracer      trace.Tracer
}

func NewAuthController(userService *service.UserService, authService *service.AuthService, logger *logrus.Logger, validator *validation.Validation) *AuthController {
	return &AuthController{userService, authService, logger, validator, otel.Tracer("AuthController")}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Login")
	defer span.End()

	req := new(dto.AuthRequest)
	if err := c.Validation.ParseAndValidate(ctx, req); err != nil {
		c.Logger.WithError(err).Warn("Invalid login request")
		return err
	}

	token, err := c.UserService.Auth(userContext, req)
	if err != nil {
		c.Logger.WithError(err).Warn("Invalid login attempt")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.TokenResponse]{Data: token})
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Register")
	defer span.End()

	req := new(dto.RegisterRequest)
	if err := c.Validation.ParseAndValidate(ctx, req); err != nil {
		c.Logger.WithError(err).Warn("Invalid registration request")
		return err
	}

	user := &dto.UserDto{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	}
	if err := c.UserService.Save(userContext, user); err != nil {
		c.Logger.WithError(err).Warn("User registration failed")
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.WebResponse[*dto.UserResponse]{Data: converter.UserToResponse(user)})
}

func (c *AuthController) RefreshToken(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "RefreshToken")
	defer span.End()

	req := new(dto.RefreshTokenRequest)
	if err := c.Validation.ParseAndValidate(ctx, req); err != nil {
		c.Logger.WithError(err).Warn("Invalid refresh token request")
		return err
	}

	token, err := c.AuthService.RefreshToken(userContext, req.RefreshToken)
	if err != nil {
		c.Logger.WithError(err).Warn("Invalid refresh token attempt")
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.TokenResponse]{Data: token})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Logout")
	defer span.End()

	req := new(dto.LogoutRequest)
	if err := c.Validation.ParseAndValidate(ctx, req); err != nil {
		c.Logger.WithError(err).Warn("Invalid logout request")
		return err
	}

	if err := c.AuthService.Logout(userContext, req.AccessToken, req.RefreshToken); err != nil {
		c.Logger.WithError(err).Error("Failed to logout")
		return err
	}

	return ctx.JSON(dto.WebResponse[string]{Data: "Logout successfully"})
}
