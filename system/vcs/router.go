package vcs

import (
	"relman/base"
	controller "relman/system/vcs/external/http"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes 注册需要登录的接口
func RegisterRoutes(m *Module, api fiber.Router) {
	auth := base.UserAuth.RequireAuth()
	admin := base.UserAuth.RequireAdmin()

	controller.NewReferenceController(m.internalApp).RegisterRoutes(api, auth, admin)
	controller.NewBaselineController(m.internalApp).RegisterRoutes(api, auth)
	controller.NewPackageController(m.internalApp).RegisterRoutes(api, auth)
}

// RegisterPublicRoutes 注册无需登录的下载接口
func RegisterPublicRoutes(m *Module, root fiber.Router) {
	controller.NewPackageController(m.internalApp).RegisterPublicRoutes(root)
}
