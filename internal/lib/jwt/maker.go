package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/microlend/microloan/internal/models"
)

// CustomClaims описывает данные принципала, хранящиеся в JWT.
// Роль фиксируется в момент выпуска токена и не перечитывается из БД
// при каждом запросе: токен остаётся валидным до истечения exp,
// даже если учётная запись изменилась.
type CustomClaims struct {
	Email                string      `json:"email"` // Идентификатор принципала
	Role                 models.Role `json:"role"`  // Роль принципала
	jwt.RegisteredClaims             // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создаёт JWT токен с заданными email и ролью, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(email string, role models.Role) (string, error) {
	const op = "jwt.GenerateToken"
	claims := CustomClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет его подпись и срок жизни,
// возвращает CustomClaims с данными, если токен корректен.
//
// Просроченный токен даёт ErrTokenExpired, любой другой дефект — ErrTokenInvalid.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	if _, roleErr := models.ParseRole(claims.Role.String()); roleErr != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	return claims, nil
}
