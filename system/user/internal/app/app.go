package app

import (
	"context"

	"relman/base"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/system/user/internal/dao"
	"relman/system/user/internal/model"
	"relman/system/user/internal/service"

	"gorm.io/gorm"
)

// App 用户组件应用组合根
type App struct {
	UserService *service.UserService
	RoleService *service.RoleService
	log         *logger.Log
	err         *errorc.ErrorBuilder
	db          *gorm.DB
}

// NewApp 创建用户应用实例
func NewApp() *App {
	log := base.Logger.WithEntryName("UserApp")

	userDao := dao.NewUserDao(base.DB, log)
	roleDao := dao.NewRoleDao(base.DB)
	userProjectDao := dao.NewUserProjectDao(base.DB)

	return &App{
		UserService: service.NewUserService(base.DB, userDao, userProjectDao, log),
		RoleService: service.NewRoleService(roleDao),
		log:         log,
		err:         errorc.NewErrorBuilder("UserApp"),
		db:          base.DB,
	}
}

// VisibleProjectIDs 非管理员可见的项目，管理员返回 all=true
func (a *App) VisibleProjectIDs(ctx context.Context, userID int64) (ids []int64, all bool, err error) {
	user, err := a.UserService.FindById(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user.RoleID == model.RoleAdmin {
		return nil, true, nil
	}
	ids, err = a.UserService.ProjectIDs(ctx, userID)
	return ids, false, err
}
