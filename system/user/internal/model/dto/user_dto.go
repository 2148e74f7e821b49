package dto

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" validate:"required" comment:"用户名"`
	Password string `json:"password" validate:"required" comment:"密码"`
}

// CreateUserReq 创建用户请求
type CreateUserReq struct {
	Username   string  `json:"username" validate:"required,max=64" comment:"用户名"`
	Password   string  `json:"password" validate:"required,min=6" comment:"密码"`
	Email      string  `json:"email" validate:"omitempty,email" comment:"邮箱"`
	RoleID     int64   `json:"role_id" validate:"required" comment:"角色"`
	ProjectIDs []int64 `json:"project_ids"`
}

// UpdateUserReq 修改用户，未传的字段不修改
type UpdateUserReq struct {
	Email    *string `json:"email" validate:"omitempty,email" comment:"邮箱"`
	RoleID   *int64  `json:"role_id"`
	Password *string `json:"password" validate:"omitempty,min=6" comment:"密码"`
}

// SetProjectsReq 设置用户参与的项目
type SetProjectsReq struct {
	ProjectIDs []int64 `json:"project_ids"`
}
