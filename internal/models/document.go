package models

import "time"

// Document хранит ссылки на загруженные документы пользователя.
// Сами файлы лежат в хранилище документов (диск или S3),
// здесь сохраняются только ключи.
type Document struct {
	ID         int       // Идентификатор записи
	UserUID    string    // Владелец документов
	AadharKey  string    // Ключ файла Aadhar в хранилище
	PANKey     string    // Ключ файла PAN в хранилище
	UploadedAt time.Time // Дата загрузки
}
