package domain

// 角色常量（后端 role 字段的取值）
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// ValidRole 检查角色取值是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// User 用户账号（对应后端 UserResponse）
type User struct {
	ID                          int    `json:"id"`
	Name                        string `json:"name"`
	Email                       string `json:"email"`
	Role                        string `json:"role"`
	NotificationCooldownMinutes int    `json:"notification_cooldown_minutes"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileUpdate 个人资料更新请求（空字段不序列化）
type ProfileUpdate struct {
	Name                        string `json:"name,omitempty"`
	OldPassword                 string `json:"old_password,omitempty"`
	NewPassword                 string `json:"new_password,omitempty"`
	NotificationCooldownMinutes int    `json:"notification_cooldown_minutes,omitempty"`
}

// CreateUserRequest 管理员创建用户
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest 管理员更新用户（空字段不序列化）
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}
