package fiber_handle

import (
	"context"
	"strings"

	"relman/pkg/core/consts"
	"relman/pkg/core/tracer"

	"github.com/gofiber/fiber/v2"
)

type TracerConfig struct {
	Tracer tracer.Tracer
}

// NewApiTracer 为每个请求开启追踪；上游携带追踪头时沿用父链路
func NewApiTracer(config TracerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimPrefix(strings.SplitN(c.OriginalURL(), "?", 2)[0], "/")
		ctx := c.UserContext()

		var (
			traceID string
			finish  func()
		)
		if parent := c.Get(consts.TraceHeaderName); parent != "" {
			var err error
			ctx, traceID, finish, err = config.Tracer.StartTraceWithParent(ctx, name, parent)
			if err != nil {
				ctx, traceID, finish = config.Tracer.StartTrace(ctx, name)
			}
		} else {
			ctx, traceID, finish = config.Tracer.StartTrace(ctx, name)
		}
		defer finish()

		ctx = context.WithValue(ctx, consts.TraceKey, traceID)
		c.SetUserContext(ctx)
		c.Locals(consts.TraceKey, traceID)
		return c.Next()
	}
}
