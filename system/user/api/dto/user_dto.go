package dto

// UserDTO 对外暴露的用户信息
type UserDTO struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	RoleID     int64   `json:"role_id"`
	IsAdmin    bool    `json:"is_admin"`
	ProjectIDs []int64 `json:"project_ids"`
}
