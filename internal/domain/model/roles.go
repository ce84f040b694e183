package model

// Role роль вызывающего пользователя
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCommon Role = "common"
)

// ParseRole приводит строку к роли. Неизвестные значения считаются обычным пользователем.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCommon
}

// Caller представляет вызывающего пользователя, как его определил слой авторизации
type Caller struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// IsAdmin сообщает, имеет ли пользователь права администратора
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
