package service

import (
	"context"

	cmdbdto "relman/system/cmdb/api/dto"
	userdto "relman/system/user/api/dto"
)

// Users 依赖的用户组件能力
type Users interface {
	GetUser(ctx context.Context, id int64) (*userdto.UserDTO, error)
	// VisibleProjectIDs all 为 true 时可见全部项目
	VisibleProjectIDs(ctx context.Context, userID int64) ([]int64, bool, error)
}

// Cmdb 依赖的配置管理组件能力
type Cmdb interface {
	GetProject(ctx context.Context, id int64) (*cmdbdto.ProjectDTO, error)
	GetEnv(ctx context.Context, id int64) (*cmdbdto.EnvDTO, error)
	GetApp(ctx context.Context, id int64) (*cmdbdto.AppDTO, error)
	FindApp(ctx context.Context, projectID, subsystemID, envID int64) (*cmdbdto.AppDTO, error)
	AppIDsByProjects(ctx context.Context, projectIDs []int64) ([]int64, error)
}

// RelOp 关系修改方式
type RelOp int

const (
	RelReplace RelOp = iota
	RelAdd
	RelRemove
)
