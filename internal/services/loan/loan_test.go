package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/microlend/microloan/internal/models"
	"github.com/microlend/microloan/internal/rabbitmq"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateLoan(ctx context.Context, loan models.Loan) (int, error) {
	args := m.Called(ctx, loan)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetLoan(ctx context.Context, id int) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}
func (m *RepoMock) ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}
func (m *RepoMock) UpdateLoanStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CreateDocument(ctx context.Context, doc models.Document) (int, error) {
	args := m.Called(ctx, doc)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type DocsMock struct{ mock.Mock }

func (m *DocsMock) Save(ctx context.Context, key string, r io.Reader) error {
	args := m.Called(ctx, key, r)
	return args.Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(exchange, routingkey string, message any) error {
	args := m.Called(exchange, routingkey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(r *RepoMock, d *DocsMock, c *CacheMock, p *PublisherMock) *LoanService {
	return NewLoanService(r, d, c, p, newNoopLogger())
}

func TestLoanService_Apply(t *testing.T) {
	req := models.DummyLoan{
		Amount:         50000,
		Type:           "personal",
		DurationMonths: 12,
	}

	t.Run("success - with documents", func(t *testing.T) {
		repo := new(RepoMock)
		docs := new(DocsMock)
		cache := new(CacheMock)

		docs.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
			return len(key) > 0
		}), mock.Anything).Return(nil).Twice()
		repo.On("CreateDocument", mock.Anything, mock.MatchedBy(func(doc models.Document) bool {
			return doc.UserUID == "uid-1" && doc.AadharKey != "" && doc.PANKey != ""
		})).Return(1, nil).Once()
		repo.On("CreateLoan", mock.Anything, mock.MatchedBy(func(loan models.Loan) bool {
			return loan.UserUID == "uid-1" && loan.Status == models.StatusPending && loan.Amount == 50000
		})).Return(42, nil).Once()
		cache.On("Set", "loan:42", mock.Anything, time.Hour).Return(nil).Once()

		service := newService(repo, docs, cache, new(PublisherMock))
		id, err := service.Apply(context.Background(), "uid-1", req,
			bytes.NewReader([]byte("aadhar")), bytes.NewReader([]byte("pan")))

		require.NoError(t, err)
		assert.Equal(t, 42, id)
		repo.AssertExpectations(t)
		docs.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("success - without documents", func(t *testing.T) {
		repo := new(RepoMock)
		docs := new(DocsMock)
		cache := new(CacheMock)

		repo.On("CreateLoan", mock.Anything, mock.Anything).Return(43, nil).Once()
		cache.On("Set", "loan:43", mock.Anything, time.Hour).Return(nil).Once()

		service := newService(repo, docs, cache, new(PublisherMock))
		id, err := service.Apply(context.Background(), "uid-1", req, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 43, id)
		repo.AssertNotCalled(t, "CreateDocument")
		docs.AssertNotCalled(t, "Save")
	})

	t.Run("document store error", func(t *testing.T) {
		repo := new(RepoMock)
		docs := new(DocsMock)

		docs.On("Save", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("disk full")).Once()

		service := newService(repo, docs, new(CacheMock), new(PublisherMock))
		_, err := service.Apply(context.Background(), "uid-1", req,
			bytes.NewReader([]byte("aadhar")), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		repo.AssertNotCalled(t, "CreateLoan")
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(RepoMock)

		repo.On("CreateLoan", mock.Anything, mock.Anything).
			Return(0, errors.New("db down")).Once()

		service := newService(repo, new(DocsMock), new(CacheMock), new(PublisherMock))
		_, err := service.Apply(context.Background(), "uid-1", req, nil, nil)

		require.Error(t, err)
	})
}

func TestLoanService_Status(t *testing.T) {
	loan := &models.Loan{
		ID:      42,
		UserUID: "uid-1",
		Amount:  50000,
		Status:  models.StatusPending,
	}

	t.Run("cache hit", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "loan:42", mock.Anything).
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.Loan)
				*ptr = loan
			}).
			Return(true, nil).Once()

		service := newService(repo, new(DocsMock), cache, new(PublisherMock))
		got, err := service.Status(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, loan, got)
		repo.AssertNotCalled(t, "GetLoan")
	})

	t.Run("cache miss - read from repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "loan:42", mock.Anything).Return(false, nil).Once()
		repo.On("GetLoan", mock.Anything, 42).Return(loan, nil).Once()
		cache.On("Set", "loan:42", loan, time.Hour).Return(nil).Once()

		service := newService(repo, new(DocsMock), cache, new(PublisherMock))
		got, err := service.Status(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, loan, got)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "loan:99", mock.Anything).Return(false, nil).Once()
		repo.On("GetLoan", mock.Anything, 99).Return(nil, sql.ErrNoRows).Once()

		service := newService(repo, new(DocsMock), cache, new(PublisherMock))
		_, err := service.Status(context.Background(), 99)

		require.Error(t, err)
	})
}

func TestLoanService_UpdateStatus(t *testing.T) {
	loan := &models.Loan{
		ID:      42,
		UserUID: "uid-1",
		Amount:  50000,
		Status:  models.StatusPending,
	}
	user := &models.User{
		UID:      "uid-1",
		FullName: "Test User",
		Email:    "user@example.com",
	}

	t.Run("success - approve and publish", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)

		repo.On("GetLoan", mock.Anything, 42).Return(loan, nil).Once()
		repo.On("UpdateLoanStatus", mock.Anything, 42, models.StatusApproved).Return(1, nil).Once()
		cache.On("Invalidate", "loan:42").Return(nil).Once()
		repo.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
		publisher.On("Publish", rabbitmq.Exchange, rabbitmq.LoanDecisionRoutingKey,
			models.LoanDecisionEvent{
				LoanID:   42,
				Email:    "user@example.com",
				FullName: "Test User",
				Amount:   50000,
				Status:   models.StatusApproved,
			}).Return(nil).Once()

		service := newService(repo, new(DocsMock), cache, publisher)
		count, err := service.UpdateStatus(context.Background(), 42, "APPROVED")

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("invalid decision", func(t *testing.T) {
		repo := new(RepoMock)

		service := newService(repo, new(DocsMock), new(CacheMock), new(PublisherMock))
		_, err := service.UpdateStatus(context.Background(), 42, "PENDING")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown loan decision")
		repo.AssertNotCalled(t, "UpdateLoanStatus")
	})

	t.Run("loan not found", func(t *testing.T) {
		repo := new(RepoMock)

		repo.On("GetLoan", mock.Anything, 99).Return(nil, sql.ErrNoRows).Once()

		service := newService(repo, new(DocsMock), new(CacheMock), new(PublisherMock))
		_, err := service.UpdateStatus(context.Background(), 99, "REJECTED")

		require.Error(t, err)
		repo.AssertNotCalled(t, "UpdateLoanStatus")
	})

	t.Run("publish failure does not fail the update", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		publisher := new(PublisherMock)

		repo.On("GetLoan", mock.Anything, 42).Return(loan, nil).Once()
		repo.On("UpdateLoanStatus", mock.Anything, 42, models.StatusRejected).Return(1, nil).Once()
		cache.On("Invalidate", "loan:42").Return(nil).Once()
		repo.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("broker down")).Once()

		service := newService(repo, new(DocsMock), cache, publisher)
		count, err := service.UpdateStatus(context.Background(), 42, "REJECTED")

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestLoanService_ListAll(t *testing.T) {
	repo := new(RepoMock)
	loans := []*models.Loan{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusApproved},
	}
	repo.On("ListLoans", mock.Anything, 10, 0).Return(loans, nil).Once()

	service := newService(repo, new(DocsMock), new(CacheMock), new(PublisherMock))
	got, err := service.ListAll(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}
