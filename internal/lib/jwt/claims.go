// Package jwt реализует выпуск и проверку JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с email и ролью.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"errors"
	"time"

	"github.com/microlend/microloan/internal/models"
)

// Ошибки проверки токена. ErrTokenExpired возвращается для валидно
// подписанного, но просроченного токена; все остальные дефекты
// (подделанная подпись, чужой ключ, мусор вместо токена)
// сворачиваются в ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Maker описывает интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен с email и ролью принципала.
	GenerateToken(email string, role models.Role) (string, error)
	// ParseToken проверяет подпись и срок жизни токена и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker на секретном ключе HMAC.
// Секрет передаётся при создании и после старта процесса не меняется,
// поэтому экземпляр можно свободно разделять между горутинами.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
