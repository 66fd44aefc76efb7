package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorHandler maps domain error kinds to HTTP statuses. The underlying
// cause is exposed in the response only in development.
func NewErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"

		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			errorCode = string(domainErr.Kind)
			message = domainErr.Message

			switch domainErr.Kind {
			case domain.KindValidation:
				code = fiber.StatusBadRequest
			case domain.KindNotFound:
				code = fiber.StatusNotFound
			case domain.KindForbidden:
				code = fiber.StatusForbidden
			case domain.KindConflict:
				code = fiber.StatusConflict
			default:
				code = fiber.StatusInternalServerError
				message = "Internal server error"
			}
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			case fiber.StatusUnprocessableEntity:
				errorCode = "VALIDATION_ERROR"
			}
		}

		resp := ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: uuid.New().String()[:8],
		}
		if cfg.IsDevelopment() && code == fiber.StatusInternalServerError {
			resp.Detail = err.Error()
		}

		return c.Status(code).JSON(resp)
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
