package models

import "time"

// User представляет зарегистрированного заёмщика.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	FullName     string    // Полное имя
	Email        string    // Электронная почта (точное совпадение, с учётом регистра)
	PasswordHash string    // bcrypt-хэш пароля
	Role         Role      // Роль, при регистрации всегда RoleUser
	CibilScore   int       // Кредитный рейтинг CIBIL (300-900)
	Aadhar       string    // Номер Aadhar, указанный при регистрации
	PAN          string    // Номер PAN, указанный при регистрации
	CreatedAt    time.Time // Дата создания учётной записи
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"` // Полное имя
	Email    string `json:"email" validate:"required,email"`             // Электронная почта
	Password string `json:"password" validate:"required,min=6"`          // Пароль (минимум 6 символов)
	Aadhar   string `json:"aadhar" validate:"omitempty,len=12,numeric"`  // Номер Aadhar
	PAN      string `json:"pan" validate:"omitempty,len=10,alphanum"`    // Номер PAN
}
