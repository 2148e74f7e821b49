package fiber_handle

import (
	"errors"

	errorc "relman/pkg/core/err"

	"github.com/gofiber/fiber/v2"
)

// ErrHandler 把错误码映射为 HTTP 状态码，detail 为根因描述
func ErrHandler(ctx *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return ctx.Status(e.Code).JSON(fiber.Map{"status": e.Code, "message": e.Message, "detail": e.Message})
	}

	cError := errorc.ParseError(err)
	status := cError.ErrorCode.HTTPStatus()
	return ctx.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": cError.Message(),
		"detail":  cError.RootCause(),
	})
}
