package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into the shared
// response envelope so clients never see fiber's default error page.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
