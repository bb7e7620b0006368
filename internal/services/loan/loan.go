// Package services содержит бизнес-логику заявок на займы:
// подача с документами, проверка статуса, решение администратора.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/microlend/microloan/internal/docstore"
	"github.com/microlend/microloan/internal/models"
	"github.com/microlend/microloan/internal/rabbitmq"
)

// LoanRepository определяет методы для работы с заявками в хранилище.
type LoanRepository interface {
	// CreateLoan добавляет новую заявку и возвращает её ID.
	CreateLoan(ctx context.Context, loan models.Loan) (int, error)
	// GetLoan возвращает заявку по ID.
	GetLoan(ctx context.Context, id int) (*models.Loan, error)
	// ListLoans возвращает список всех заявок с пагинацией.
	ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error)
	// UpdateLoanStatus обновляет статус заявки и возвращает количество изменённых записей.
	UpdateLoanStatus(ctx context.Context, id int, status string) (int, error)
	// CreateDocument сохраняет ключи загруженных документов пользователя.
	CreateDocument(ctx context.Context, doc models.Document) (int, error)
	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Publisher публикует сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingkey string, message any) error
}

// LoanService реализует бизнес-логику работы с заявками, включая кеширование
// и публикацию событий о решениях.
type LoanService struct {
	repo      LoanRepository
	docs      docstore.Store
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// NewLoanService создает новый экземпляр LoanService.
func NewLoanService(repo LoanRepository, docs docstore.Store, cache Cache, publisher Publisher, log *slog.Logger) *LoanService {
	return &LoanService{
		repo:      repo,
		docs:      docs,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Apply создает новую заявку на заём в статусе PENDING.
// Приложенные файлы документов сохраняются в хранилище документов,
// их ключи записываются в базу.
func (s *LoanService) Apply(ctx context.Context, userUID string, req models.DummyLoan, aadhar, pan io.Reader) (int, error) {
	var aadharKey, panKey string
	if aadhar != nil {
		aadharKey = docstore.NewStorageKey(userUID, "aadhar")
		if err := s.docs.Save(ctx, aadharKey, aadhar); err != nil {
			return 0, fmt.Errorf("failed to store aadhar document: %w", err)
		}
	}
	if pan != nil {
		panKey = docstore.NewStorageKey(userUID, "pan")
		if err := s.docs.Save(ctx, panKey, pan); err != nil {
			return 0, fmt.Errorf("failed to store pan document: %w", err)
		}
	}
	if aadharKey != "" || panKey != "" {
		doc := models.Document{
			UserUID:   userUID,
			AadharKey: aadharKey,
			PANKey:    panKey,
		}
		if _, err := s.repo.CreateDocument(ctx, doc); err != nil {
			return 0, err
		}
	}

	loan := models.Loan{
		UserUID:        userUID,
		Amount:         req.Amount,
		Type:           req.Type,
		DurationMonths: req.DurationMonths,
		Status:         models.StatusPending,
		AppliedAt:      time.Now().UTC(),
	}
	id, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new loan application", slog.Int("id", id))

	loan.ID = id
	cacheKey := fmt.Sprintf("loan:%d", id)
	if err := s.cache.Set(cacheKey, loan, time.Hour); err != nil {
		s.log.Warn("failed to cache loan", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Status возвращает заявку по ID, используя кеш или репозиторий.
func (s *LoanService) Status(ctx context.Context, id int) (*models.Loan, error) {
	var result *models.Loan
	cacheKey := fmt.Sprintf("loan:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// ListAll возвращает список всех заявок с пагинацией.
func (s *LoanService) ListAll(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	return s.repo.ListLoans(ctx, limit, offset)
}

// UpdateStatus применяет решение администратора по заявке:
// APPROVED или REJECTED. Кеш инвалидируется, событие о решении
// публикуется в очередь уведомлений.
func (s *LoanService) UpdateStatus(ctx context.Context, id int, decision string) (int, error) {
	status, err := models.ParseDecision(decision)
	if err != nil {
		return 0, err
	}

	loan, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateLoanStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("loan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	user, err := s.repo.GetUser(ctx, loan.UserUID)
	if err != nil {
		s.log.Error("failed to get loan owner for notification", slog.Int("id", id), slog.Any("err", err))
		return count, nil
	}

	event := models.LoanDecisionEvent{
		LoanID:   id,
		Email:    user.Email,
		FullName: user.FullName,
		Amount:   loan.Amount,
		Status:   status,
	}
	if err := s.publisher.Publish(rabbitmq.Exchange, rabbitmq.LoanDecisionRoutingKey, event); err != nil {
		s.log.Error("failed to publish loan decision", slog.Int("id", id), slog.Any("err", err))
	}

	return count, nil
}
