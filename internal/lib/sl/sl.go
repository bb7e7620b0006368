// Package sl — небольшие помощники для структурированного логирования
// через slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы во всех
// логах сервиса ошибки выводились одним и тем же полем.
//
//	log.Error("failed to save loan", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
