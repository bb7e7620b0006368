// Package docstore реализует хранилище загруженных документов (Aadhar, PAN).
// Сами файлы лежат вне базы данных: на локальном диске или в S3-совместимом
// хранилище, в БД сохраняются только ключи.
package docstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/microlend/microloan/internal/config"
)

// Store описывает интерфейс хранилища файлов документов.
type Store interface {
	// Save сохраняет содержимое файла под указанным ключом.
	Save(ctx context.Context, key string, r io.Reader) error
}

// NewStorageKey генерирует ключ для нового файла документа.
// Ключи группируются по пользователю и дате загрузки.
func NewStorageKey(userUID, kind string) string {
	d := time.Now()
	return fmt.Sprintf("documents/%s/%d-%02d-%02d/%s-%v", userUID, d.Year(), d.Month(), d.Day(), kind, uuid.New())
}

// New создаёт хранилище документов по настройкам конфига:
// "s3" — S3-совместимое хранилище, иначе — локальный каталог.
func New(ctx context.Context, cfg config.Documents) (Store, error) {
	const op = "docstore.New"
	switch cfg.Backend {
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	default:
		return NewLocalStore(cfg.LocalDir), nil
	}
}
