package serverutils

import (
	"errors"

	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into JSON responses.
// Unknown errors are logged and answered with a generic 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, kind, message := classify(ctx, err)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(status, kind, message))
	}
}

func classify(ctx *fiber.Ctx, err error) (int, string, string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return StatusFor(appErr, ActorFromCtx(ctx).IsGuest()), string(appErr.Kind), appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, "HTTP_ERROR", fiberErr.Message
	}

	return fiber.StatusInternalServerError, "INTERNAL", "internal server error"
}

// StatusFor maps a domain error to its HTTP status. A denial tells guests to
// authenticate and tells signed-in users they are forbidden.
func StatusFor(err *apperror.Error, guest bool) int {
	switch err.Kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindAliasConflict:
		return fiber.StatusConflict
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindAuthorizationDenied:
		if guest {
			return fiber.StatusUnauthorized
		}
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
