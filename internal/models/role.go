// Package models содержит доменные структуры сервиса микрозаймов:
// пользователей, администраторов, займы и загруженные документы.
package models

import "fmt"

// Role определяет закрытый набор ролей принципала.
// Роль хранится в БД и внутри JWT как строка, но в коде
// используется только через константы RoleUser и RoleAdmin.
type Role string

const (
	// RoleUser — обычный пользователь, подающий заявки на займы.
	RoleUser Role = "USER"
	// RoleAdmin — администратор, управляющий заявками и пользователями.
	RoleAdmin Role = "ADMIN"
)

// ParseRole преобразует строку в Role, отклоняя любые значения
// вне закрытого набора.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
