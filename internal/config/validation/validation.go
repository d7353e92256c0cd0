package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"koala-user-service/internal/config/env"
	"koala-user-service/internal/utils/errcode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

const defaultMinPasswordEntropy = 50

type ValidationError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

type Validation struct {
	Validator *validator.Validate
}

func NewValidation(config *env.Config) *Validation {
	minEntropy := config.Password.MinEntropy
	if minEntropy <= 0 {
		minEntropy = defaultMinPasswordEntropy
	}

	validate := validator.New()
	// "password" rejects guessable passwords by entropy instead of composition rules
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordvalidator.Validate(fl.Field().String(), minEntropy) == nil
	})

	// "maxbytes" bounds the encoded length, which bcrypt caps at 72 bytes
	_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return &Validation{
		Validator: validate,
	}
}

func (v *Validation) Validate(data interface{}) error {
	errors := make(map[string][]string)

	// Validate each field separately
	val := v.Validator.Struct(data)
	if val != nil {
		validationErrors, ok := val.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("unexpected validation error: %w", val)
		}

		dataType := reflect.TypeOf(data)
		if dataType.Kind() == reflect.Ptr {
			dataType = dataType.Elem()
		}

		// Iterate over each validation error
		for _, err := range validationErrors {
			// Use reflection to get the JSON tag
			field, _ := dataType.FieldByName(err.StructField())
			jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
			if jsonTag == "" {
				jsonTag = strings.ToLower(err.StructField()) // Fallback to lowercase field name
			}

			message := ""
			switch err.Tag() {
			case "required":
				message = fmt.Sprintf("%s is required", jsonTag)
			case "email":
				message = fmt.Sprintf("%s must be a valid email address", jsonTag)
			case "min":
				message = fmt.Sprintf("%s must be at least %s characters long", jsonTag, err.Param())
			case "max":
				message = fmt.Sprintf("%s must not exceed %s characters", jsonTag, err.Param())
			case "alphanum":
				message = fmt.Sprintf("%s must contain only letters and digits", jsonTag)
			case "maxbytes":
				message = fmt.Sprintf("%s must not exceed %s bytes", jsonTag, err.Param())
			case "password":
				message = fmt.Sprintf("%s is too weak", jsonTag)
			case "required_without":
				message = fmt.Sprintf("%s is required when %s is empty", jsonTag, strings.ToLower(err.Param()))
			default:
				message = fmt.Sprintf("%s is invalid (%s)", jsonTag, err.Tag())
			}

			// Append multiple messages for the same jsonTag
			errors[jsonTag] = append(errors[jsonTag], message)
		}

		// Return structured validation errors
		return &ValidationError{
			Message: "Validation failed",
			Errors:  errors,
		}
	}

	return nil
}

// ParseAndValidate decodes the request body into out and validates it.
// A body that cannot be decoded yields errcode.ErrBadRequest.
func (v *Validation) ParseAndValidate(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return errcode.ErrBadRequest
	}
	return v.Validate(out)
}
