package models

// Admin представляет администратора сервиса.
// Администраторы хранятся отдельно от пользователей: единого
// пространства email между таблицами нет, один и тот же адрес
// теоретически может существовать в обеих.
type Admin struct {
	UID          string // Уникальный идентификатор администратора
	Email        string // Электронная почта
	PasswordHash string // bcrypt-хэш пароля
	Role         Role   // Всегда RoleAdmin
}

// DummyAdmin используется для приёма данных регистрации администратора
// из JSON-запроса.
type DummyAdmin struct {
	Email    string `json:"email" validate:"required,email"`    // Электронная почта
	Password string `json:"password" validate:"required,min=6"` // Пароль
}

// Principal — унифицированное представление аутентифицируемой
// учётной записи (User или Admin) для шлюза аутентификации.
type Principal struct {
	Email        string // Идентификатор принципала
	PasswordHash string // bcrypt-хэш пароля
	Role         Role   // RoleAdmin или RoleUser
}
