// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/microlend/microloan/internal/lib/jwt"
	"github.com/microlend/microloan/internal/lib/password"
	"github.com/microlend/microloan/internal/models"
)

// ErrInvalidCredentials возвращается при любой ошибке входа:
// неизвестный email и неверный пароль не различаются, чтобы
// по ответу нельзя было перебирать зарегистрированные адреса.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultCibilScore — кредитный рейтинг, присваиваемый новому пользователю.
const DefaultCibilScore = 700

// AuthRepository описывает контракт для работы с учётными записями в базе данных.
type AuthRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// RegisterAdmin сохраняет нового администратора и возвращает его UID.
	RegisterAdmin(ctx context.Context, admin models.Admin) (string, error)

	// GetAdminByEmail возвращает администратора по email или ошибку, если не найден.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	repo     AuthRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo AuthRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		repo:     repo,
		jwtMaker: jwtMaker,
	}
}

// RegisterUser создает нового пользователя с хэшированием пароля,
// ролью USER и стартовым кредитным рейтингом.
func (s *AuthService) RegisterUser(ctx context.Context, dummy models.DummyUser) (string, error) {
	hashed, err := password.GetHash(dummy.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		FullName:     dummy.FullName,
		Email:        dummy.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		CibilScore:   DefaultCibilScore,
		Aadhar:       dummy.Aadhar,
		PAN:          dummy.PAN,
	}
	return s.repo.RegisterUser(ctx, user)
}

// RegisterAdmin создает нового администратора с хэшированием пароля.
func (s *AuthService) RegisterAdmin(ctx context.Context, dummy models.DummyAdmin) (string, error) {
	hashed, err := password.GetHash(dummy.Password)
	if err != nil {
		return "", err
	}
	admin := models.Admin{
		Email:        dummy.Email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	return s.repo.RegisterAdmin(ctx, admin)
}

// Login проверяет пароль учётной записи и генерирует JWT.
// Сначала email ищется среди администраторов, затем среди пользователей:
// при совпадении адреса в обеих таблицах побеждает администратор.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, models.Role, error) {
	principal, err := s.findPrincipal(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(principal.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(principal.Email, principal.Role)
	if err != nil {
		return "", "", err
	}
	return token, principal.Role, nil
}

// ValidateToken проверяет JWT и возвращает его клеймы.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

func (s *AuthService) findPrincipal(ctx context.Context, email string) (*models.Principal, error) {
	if admin, err := s.repo.GetAdminByEmail(ctx, email); err == nil {
		return &models.Principal{
			Email:        admin.Email,
			PasswordHash: admin.PasswordHash,
			Role:         admin.Role,
		}, nil
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}, nil
}
