package result

import (
	errorc "relman/pkg/core/err"
	"relman/pkg/core/util"

	"github.com/gofiber/fiber/v2"
)

type PageData struct {
	Total   int64       `json:"total"`
	Content interface{} `json:"content"`
}

func OK(c *fiber.Ctx, v interface{}) error {
	return c.Status(200).JSON(fiber.Map{"status": 200, "data": v})
}

func Page(c *fiber.Ctx, total int64, content interface{}) error {
	return OK(c, PageData{Total: total, Content: content})
}

// Action 操作类接口，data 之外带 detail 说明
func Action(c *fiber.Ctx, v interface{}, detail string) error {
	return c.Status(200).JSON(fiber.Map{"status": 200, "data": v, "detail": detail})
}

func BadRequestNormal(c *fiber.Ctx, message string, err error) error {
	return errorc.New(message, err).WithTraceID(util.Context(c))
}

func BadRequest(c *fiber.Ctx, err error) error {
	return err
}

func Once(c *fiber.Ctx, v interface{}, err error) error {
	if err == nil {
		return OK(c, v)
	} else {
		return BadRequest(c, err)
	}
}
