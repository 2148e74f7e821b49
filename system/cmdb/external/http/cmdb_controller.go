package controller

import (
	"relman/base"
	"relman/pkg/core/mvc"
	"relman/system/cmdb/internal/app"
	"relman/system/cmdb/internal/model"

	"github.com/gofiber/fiber/v2"
)

// CmdbController 项目、子系统、环境、应用的增删改查，写操作需管理员
type CmdbController struct {
	app *app.App
}

func NewCmdbController(app *app.App) *CmdbController {
	return &CmdbController{app: app}
}

func (ctrl *CmdbController) RegisterRoutes(api fiber.Router) {
	auth := base.UserAuth.RequireAuth()
	admin := base.UserAuth.RequireAdmin()

	mvc.Register[model.Project](api.Group("/projects", auth),
		mvc.NewBaseController[model.Project](ctrl.app.ProjectService), admin)
	mvc.Register[model.Subsystem](api.Group("/subsystems", auth),
		mvc.NewBaseController[model.Subsystem](ctrl.app.SubsystemService, "project_id"), admin)
	mvc.Register[model.Environment](api.Group("/envs", auth),
		mvc.NewBaseController[model.Environment](ctrl.app.EnvironmentService), admin)
	mvc.Register[model.App](api.Group("/apps", auth),
		mvc.NewBaseController[model.App](ctrl.app.AppService, "project_id", "subsystem_id", "env_id"), admin)
}
