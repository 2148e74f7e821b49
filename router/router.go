package router

import (
	"relman/app"
	"relman/base"
	"relman/pkg/core/fiber_handle"
	"relman/pkg/core/logger"
	"relman/system/cmdb"
	"relman/system/user"
	"relman/system/vcs"

	"github.com/gofiber/fiber/v2"
)

// Register 负责集中注册所有 HTTP 路由。
// 只依赖 app.App 和 fiber.App，不包含业务逻辑。
func Register(a *app.App, f *fiber.App) {
	tracer := fiber_handle.NewApiTracer(fiber_handle.TracerConfig{Tracer: base.Tracer})
	apiLogger := logger.NewApiLogger(logger.Config{Logger: base.Logger})

	api := f.Group("/api", tracer, apiLogger)
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "ok"})
	})

	user.RegisterRoutes(a.UserModule, api)
	cmdb.RegisterRoutes(a.CmdbModule, api)
	vcs.RegisterRoutes(a.VcsModule, api)

	// 下载不在 /api 下，也不需要登录
	f.Use("/packages/download", tracer, apiLogger)
	vcs.RegisterPublicRoutes(a.VcsModule, f)
}
