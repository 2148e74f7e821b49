package app

import (
	"context"

	"relman/base"
	"relman/system/cmdb"
	"relman/system/user"
	"relman/system/vcs"
)

// App 应用组合根，持有各组件的模块门面
type App struct {
	UserModule *user.Module
	CmdbModule *cmdb.Module
	VcsModule  *vcs.Module
}

// NewApp 按依赖顺序创建模块：用户、配置管理、版本管理
func NewApp() *App {
	userModule := user.NewModule()
	cmdbModule := cmdb.NewModule()
	return &App{
		UserModule: userModule,
		CmdbModule: cmdbModule,
		VcsModule:  vcs.NewModule(userModule.Client, cmdbModule.Client),
	}
}

// Bootstrap 写入启动所需的初始数据
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.UserModule.EnsureBootstrapAdmin(ctx); err != nil {
		return err
	}
	base.Logger.Info("初始数据检查完成")
	return nil
}
