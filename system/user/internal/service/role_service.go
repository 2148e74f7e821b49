package service

import (
	"relman/pkg/core/mvc"
	"relman/system/user/internal/dao"
	"relman/system/user/internal/model"
)

// RoleService 角色服务
type RoleService struct {
	mvc.IBaseService[model.Role]
}

func NewRoleService(roleDao *dao.RoleDao) *RoleService {
	return &RoleService{IBaseService: mvc.NewBaseService[model.Role](roleDao.IBaseDao)}
}
