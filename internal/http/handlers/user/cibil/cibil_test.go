package cibil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/microlend/microloan/internal/http/middlewarectx"
)

// MockService реализует интерфейс cibil.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CibilScore(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func TestCibilHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное чтение рейтинга",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("CibilScore", mock.Anything, "user@example.com").Return(815, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"cibil_score":815}}`,
		},
		{
			name:           "нет авторизации",
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:  "ошибка сервиса",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("CibilScore", mock.Anything, "user@example.com").
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to read cibil score"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cibil", nil)
			if tt.email != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.email)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
