package docstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore сохраняет документы в каталоге на локальном диске.
// Используется в локальной разработке и тестах.
type LocalStore struct {
	baseDir string
}

// NewLocalStore создаёт локальное хранилище с указанным корневым каталогом.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save записывает содержимое файла в baseDir/key, создавая промежуточные каталоги.
func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) error {
	const op = "docstore.LocalStore.Save"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err = io.Copy(f, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
