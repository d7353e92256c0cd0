package controller

import (
	"koala-user-service/internal/config/validation"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/dto/converter"
	"koala-user-service/internal/middleware"
	"koala-user-service/internal/service"
	"koala-user-service/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type UserController struct {
	userService *service.UserService
	validation  *validation.Validation
	logger      *logrus.Logger
	tracer      trace.Tracer
}

func NewUserController(userService *service.UserService, validation *validation.Validation, logger *logrus.Logger) *UserController {
	return &UserController{userService, validation, logger, otel.Tracer("UserController")}
}

func (c *UserController) Me(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Me")
	defer span.End()

	auth := middleware.GetUser(ctx)

	user, err := c.userService.GetUser(userContext, auth.UUID)
	if err != nil {
		c.logger.WithError(err).Error("user not found")
		return err
	}

	return ctx.Type("json").SendString(user)
}

// Lookup finds a user by nickname or email from the query string.
func (c *UserController) Lookup(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Lookup")
	defer span.End()

	req := new(dto.LookupUserRequest)
	if err := ctx.QueryParser(req); err != nil {
		c.logger.WithError(err).Error("failed to parse request query")
		return errcode.ErrBadRequest
	}
	if err := c.validation.Validate(req); err != nil {
		return err
	}

	user, found, err := c.userService.FindUserByNicknameOrEmail(userContext, req.Nickname, req.Email)
	if err != nil {
		c.logger.WithError(err).Error("error looking up user")
		return err
	}
	if !found {
		return errcode.ErrUserNotFound
	}

	return ctx.JSON(dto.WebResponse[*dto.UserResponse]{Data: converter.UserToResponse(user)})
}
