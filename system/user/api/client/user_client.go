package client

import (
	"context"

	errorc "relman/pkg/core/err"
	"relman/system/user/api/dto"
	"relman/system/user/internal/app"
	"relman/system/user/internal/model"
)

// UserClient 用户组件对外客户端（供其他组件调用）
type UserClient struct {
	app *app.App
	err *errorc.ErrorBuilder
}

func NewUserClient(app *app.App) *UserClient {
	return &UserClient{
		app: app,
		err: errorc.NewErrorBuilder("UserClient"),
	}
}

// GetUser 根据ID查询用户，含参与的项目
func (c *UserClient) GetUser(ctx context.Context, id int64) (*dto.UserDTO, error) {
	user, err := c.app.UserService.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	projectIDs, err := c.app.UserService.ProjectIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(user, projectIDs), nil
}

// VisibleProjectIDs 用户可见的项目，管理员返回 all=true
func (c *UserClient) VisibleProjectIDs(ctx context.Context, userID int64) ([]int64, bool, error) {
	return c.app.VisibleProjectIDs(ctx, userID)
}

func toDTO(user *model.User, projectIDs []int64) *dto.UserDTO {
	return &dto.UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		RoleID:     user.RoleID,
		IsAdmin:    user.IsAdmin(),
		ProjectIDs: projectIDs,
	}
}
