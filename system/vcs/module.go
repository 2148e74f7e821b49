package vcs

import (
	"relman/system/vcs/internal/app"
	"relman/system/vcs/internal/service"
)

// Module 版本管理组件模块门面：基线、发布包与合并
type Module struct {
	internalApp *app.App
}

// NewModule users 与 cmdb 传入用户组件和配置管理组件的 Client
func NewModule(users service.Users, cmdb service.Cmdb) *Module {
	return &Module{internalApp: app.NewApp(users, cmdb)}
}
