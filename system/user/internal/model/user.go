package model

import "relman/pkg/core/model/common"

const (
	RoleAdmin     int64 = 1
	RoleDeveloper int64 = 2
)

// Role 角色，1 为管理员
type Role struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex" json:"name" validate:"required" comment:"角色名"`
}

// User 系统用户
type User struct {
	common.Model
	Username     string `gorm:"size:64;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"size:128" json:"-"`
	Email        string `gorm:"size:128" json:"email"`
	RoleID       int64  `gorm:"index" json:"role_id"`
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}

// UserProject 用户参与的项目
type UserProject struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	ProjectID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (Role) TableName() string {
	return "user_role"
}

func (User) TableName() string {
	return "user_account"
}

func (UserProject) TableName() string {
	return "user_project"
}
