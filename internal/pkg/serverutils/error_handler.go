package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// {statusCode, message} body the API contract promises, and keeps a panicking
// handler from taking down the process.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered in %s %s: %v", ctx.Method(), ctx.Path(), r)
				err = writeError(ctx, NewInternalError("internal server error"))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return writeError(ctx, appErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"statusCode": fiberErr.Code,
				"message":    fiberErr.Message,
			})
		}

		return writeError(ctx, NewInternalError("internal server error"))
	}
}

func writeError(ctx *fiber.Ctx, appErr *AppError) error {
	return ctx.Status(appErr.StatusCode).JSON(fiber.Map{
		"statusCode": appErr.StatusCode,
		"message":    appErr.Message,
	})
}
