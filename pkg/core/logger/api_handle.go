package logger

import (
	"strings"
	"time"

	errorc "relman/pkg/core/err"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	Logger *Log
}

// NewApiLogger 记录每个请求的耗时、状态与错误根因
func NewApiLogger(config Config) fiber.Handler {
	log := config.Logger.WithEntryName("API")

	return func(c *fiber.Ctx) error {
		path := strings.SplitN(c.OriginalURL(), "?", 2)[0]
		start := time.Now()

		err := c.Next()

		reqLog := log.WithField("status", c.Response().StatusCode()).
			WithField("latency", time.Since(start).Round(time.Millisecond)).
			WithField("method", c.Method()).
			WithField("path", path).
			WithField("TraceId", c.Locals("traceId")).
			WithField("userId", c.Locals("user_id"))

		if err != nil {
			errc := errorc.ParseError(err)
			errc.ToLog(log.WithTrace(c.UserContext()).GetLogger())
			reqLog = reqLog.WithField("Err", errc.RootCause())
		}
		reqLog.Debug("请求处理完毕")
		return err
	}
}
