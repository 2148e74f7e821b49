package app

import (
	"relman/base"
	"relman/system/cmdb/internal/dao"
	"relman/system/cmdb/internal/service"
)

// App 配置管理组件应用组合根
type App struct {
	ProjectService     *service.ProjectService
	SubsystemService   *service.SubsystemService
	EnvironmentService *service.EnvironmentService
	AppService         *service.AppService
}

func NewApp() *App {
	log := base.Logger.WithEntryName("CmdbApp")

	projects := service.NewProjectService(dao.NewProjectDao(base.DB))
	envs := service.NewEnvironmentService(dao.NewEnvironmentDao(base.DB))
	subsystems := service.NewSubsystemService(dao.NewSubsystemDao(base.DB), projects)

	return &App{
		ProjectService:     projects,
		SubsystemService:   subsystems,
		EnvironmentService: envs,
		AppService:         service.NewAppService(dao.NewAppDao(base.DB), projects, subsystems, envs, log),
	}
}
