package cmdb

import (
	"relman/system/cmdb/api/client"
	"relman/system/cmdb/internal/app"
)

// Module 配置管理组件模块门面
type Module struct {
	internalApp *app.App
	Client      *client.CmdbClient
}

func NewModule() *Module {
	internalApp := app.NewApp()
	return &Module{
		internalApp: internalApp,
		Client:      client.NewCmdbClient(internalApp),
	}
}
