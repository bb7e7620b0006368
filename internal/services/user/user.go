// Package services содержит бизнес-логику работы с профилями пользователей
// и их кредитными рейтингами.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/microlend/microloan/internal/models"
)

// Границы кредитного рейтинга CIBIL.
const (
	MinCibilScore = 300
	MaxCibilScore = 900
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает список всех пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateCibilScore обновляет рейтинг пользователя и возвращает количество изменённых записей.
	UpdateCibilScore(ctx context.Context, userUID string, score int) (int, error)
	// DeleteUser удаляет пользователя и возвращает количество удалённых записей.
	DeleteUser(ctx context.Context, userUID string) (int, error)
}

// UserService реализует операции над профилями пользователей.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Profile возвращает профиль пользователя по его email.
func (s *UserService) Profile(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// CibilScore возвращает кредитный рейтинг пользователя по его email.
func (s *UserService) CibilScore(ctx context.Context, email string) (int, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return user.CibilScore, nil
}

// UpdateCibilScore устанавливает новый рейтинг пользователя.
// Значение должно лежать в диапазоне MinCibilScore..MaxCibilScore.
func (s *UserService) UpdateCibilScore(ctx context.Context, userUID string, score int) (int, error) {
	if score < MinCibilScore || score > MaxCibilScore {
		return 0, fmt.Errorf("cibil score must be between %d and %d", MinCibilScore, MaxCibilScore)
	}
	count, err := s.repo.UpdateCibilScore(ctx, userUID, score)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated cibil score", slog.String("user_uid", userUID), slog.Int("score", score))
	return count, nil
}

// ListAll возвращает список всех пользователей с пагинацией.
func (s *UserService) ListAll(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Delete удаляет пользователя. Его заявки и документы удаляются
// каскадно на уровне базы данных.
func (s *UserService) Delete(ctx context.Context, userUID string) (int, error) {
	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("deleted user", slog.String("user_uid", userUID))
	return count, nil
}
