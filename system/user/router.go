package user

import (
	controller "relman/system/user/external/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册用户组件路由
func RegisterRoutes(m *Module, api fiber.Router) {
	controller.NewAuthController(m.internalApp).RegisterRoutes(api)
	controller.NewUserController(m.internalApp).RegisterRoutes(api)
}
