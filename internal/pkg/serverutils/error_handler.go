package serverutils

import (
	"errors"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the single translation point between service
// errors and HTTP responses: every handler error becomes a JSON envelope
// {error, message?} with the status its kind maps to.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			body := fiber.Map{"error": appErr.Message}
			if appErr.Err != nil {
				body["message"] = appErr.Err.Error()
			}
			return ctx.Status(appErr.StatusCode()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
