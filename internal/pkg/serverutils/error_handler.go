package serverutils

import (
	"errors"

	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler turns returned errors into the JSON error envelope. Classified
// errors keep their message; anything else is logged and hidden behind a 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := appErr.Status()
			message := appErr.Message
			if appErr.Kind == apperror.KindInternal {
				message = "internal server error"
			}
			if status >= fiber.StatusInternalServerError && log != nil {
				log.Error("HTTP", "request failed", map[string]interface{}{
					"path":   ctx.Path(),
					"method": ctx.Method(),
					"kind":   string(appErr.Kind),
					"error":  err.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(status, message, string(appErr.Kind)))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			kind := apperror.KindInternal
			switch {
			case fiberErr.Code == fiber.StatusNotFound:
				kind = apperror.KindNotFound
			case fiberErr.Code < fiber.StatusInternalServerError:
				kind = apperror.KindValidation
			}
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message, string(kind)))
		}

		if log != nil {
			log.Error("HTTP", "unhandled error", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error", string(apperror.KindInternal)))
	}
}

// ErrorHandlerMiddleware resolves handler errors inside the middleware chain,
// so middleware registered before it (tracing, logging) sees the final status.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

// BadBody wraps a body parser failure as a validation error.
func BadBody(err error) error {
	return &apperror.Error{Kind: apperror.KindValidation, Message: "invalid request body", Err: err}
}
