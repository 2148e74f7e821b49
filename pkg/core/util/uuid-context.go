package util

import (
	"context"

	"relman/pkg/core/consts"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
)

// Context 取请求上下文，没有追踪ID时补一个
func Context(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx.Value(consts.TraceKey) == nil {
		return context.WithValue(ctx, consts.TraceKey, uuid.NewV4().String())
	}
	return ctx
}
