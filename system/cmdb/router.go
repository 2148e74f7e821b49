package cmdb

import (
	controller "relman/system/cmdb/external/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册配置管理组件路由
func RegisterRoutes(m *Module, api fiber.Router) {
	controller.NewCmdbController(m.internalApp).RegisterRoutes(api)
}
