package loanstatus

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/microlend/microloan/internal/models"
)

// MockService реализует интерфейс loanstatus.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id int, decision string) (int, error) {
	args := m.Called(ctx, id, decision)
	return args.Int(0), args.Error(1)
}

func TestLoanStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное одобрение заявки",
			url:  "/api/v1/admin/loans/42/status",
			body: `{"status":"APPROVED"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "APPROVED").Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name: "успешное отклонение заявки",
			url:  "/api/v1/admin/loans/42/status",
			body: `{"status":"REJECTED"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "REJECTED").Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"REJECTED"`,
		},
		{
			name: "недопустимое решение",
			url:  "/api/v1/admin/loans/42/status",
			body: `{"status":"PENDING"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "PENDING").
					Return(0, fmt.Errorf("%w: %q", models.ErrUnknownDecision, "PENDING"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"status must be APPROVED or REJECTED"}`,
		},
		{
			name: "заявка не найдена",
			url:  "/api/v1/admin/loans/99/status",
			body: `{"status":"APPROVED"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 99, "APPROVED").
					Return(0, fmt.Errorf("storage.GetLoan: %w", sql.ErrNoRows))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"loan not found"}`,
		},
		{
			name:           "некорректный ID",
			url:            "/api/v1/admin/loans/abc/status",
			body:           `{"status":"APPROVED"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:           "некорректный JSON",
			url:            "/api/v1/admin/loans/42/status",
			body:           `not a json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/v1/admin/loans/42/status",
			body: `{"status":"APPROVED"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, 42, "APPROVED").
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update loan status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			router := chi.NewRouter()
			router.Put("/api/v1/admin/loans/{id}/status", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
