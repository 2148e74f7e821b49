package user

import (
	"context"

	"relman/base"
	"relman/system/user/api/client"
	"relman/system/user/internal/app"
	"relman/system/user/internal/model"
	"relman/system/user/internal/model/dto"
)

// Module 用户组件模块门面
type Module struct {
	internalApp *app.App
	// Client 对外客户端，供其他组件调用用户能力
	Client *client.UserClient
}

func NewModule() *Module {
	internalApp := app.NewApp()
	return &Module{
		internalApp: internalApp,
		Client:      client.NewUserClient(internalApp),
	}
}

// EnsureBootstrapAdmin 用户表为空时创建 admin/admin 管理员
func (m *Module) EnsureBootstrapAdmin(ctx context.Context) error {
	count, err := m.internalApp.UserService.Count(ctx)
	if err != nil {
		base.Logger.WithErr(err).Error("检查用户数量失败")
		return err
	}
	if count > 0 {
		return nil
	}

	user, err := m.internalApp.UserService.CreateUser(ctx, &dto.CreateUserReq{
		Username: "admin",
		Password: "admin",
		RoleID:   model.RoleAdmin,
	})
	if err != nil {
		base.Logger.WithErr(err).Error("创建默认管理员失败")
		return err
	}

	base.Logger.WithField("userId", user.ID).Info("已创建默认管理员 admin/admin")
	return nil
}
