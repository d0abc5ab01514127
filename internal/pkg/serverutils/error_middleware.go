package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts unhandled errors and panics into JSON
// envelopes so a broken handler can never leak a stack trace to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = ctx.Status(fiber.StatusInternalServerError).JSON(BaseResponse[any]{
					Success: false,
					Code:    fiber.StatusInternalServerError,
					Message: "Internal server error",
				})
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}
		if code == fiber.StatusMethodNotAllowed {
			message = "Method not allowed"
		}

		return ctx.Status(code).JSON(BaseResponse[any]{
			Success: false,
			Code:    code,
			Message: message,
		})
	}
}
