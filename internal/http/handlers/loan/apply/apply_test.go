package apply

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/microlend/microloan/internal/http/middlewarectx"
	"github.com/microlend/microloan/internal/models"
)

// MockLoanService реализует интерфейс apply.LoanService
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) Apply(ctx context.Context, userUID string, req models.DummyLoan, aadhar, pan io.Reader) (int, error) {
	args := m.Called(ctx, userUID, req, aadhar, pan)
	return args.Int(0), args.Error(1)
}

// MockUserService реализует интерфейс apply.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func buildForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".pdf")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestApplyHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{UID: "uid-1", Email: "user@example.com"}

	tests := []struct {
		name           string
		fields         map[string]string
		files          map[string][]byte
		email          string
		setupMocks     func(*MockLoanService, *MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная подача заявки с документами",
			fields: map[string]string{"amount": "50000", "type": "personal", "duration": "12"},
			files:  map[string][]byte{"aadhar": []byte("aadhar-scan"), "pan": []byte("pan-scan")},
			email:  "user@example.com",
			setupMocks: func(l *MockLoanService, u *MockUserService) {
				u.On("Profile", mock.Anything, "user@example.com").Return(user, nil)
				l.On("Apply", mock.Anything, "uid-1", models.DummyLoan{
					Amount:         50000,
					Type:           "personal",
					DurationMonths: 12,
				}, mock.Anything, mock.Anything).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"loan_id":42`,
		},
		{
			name:   "заявка без документов",
			fields: map[string]string{"amount": "50000", "type": "personal", "duration": "12"},
			email:  "user@example.com",
			setupMocks: func(l *MockLoanService, u *MockUserService) {
				u.On("Profile", mock.Anything, "user@example.com").Return(user, nil)
				l.On("Apply", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyLoan"),
					nil, nil).Return(43, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"loan_id":43`,
		},
		{
			name:           "нет авторизации",
			fields:         map[string]string{"amount": "50000", "type": "personal", "duration": "12"},
			email:          "",
			setupMocks:     func(_ *MockLoanService, _ *MockUserService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректная сумма",
			fields:         map[string]string{"amount": "abc", "type": "personal", "duration": "12"},
			email:          "user@example.com",
			setupMocks:     func(_ *MockLoanService, _ *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid amount"}`,
		},
		{
			name:           "сумма ниже минимума",
			fields:         map[string]string{"amount": "500", "type": "personal", "duration": "12"},
			email:          "user@example.com",
			setupMocks:     func(_ *MockLoanService, _ *MockUserService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Amount is below the allowed minimum`,
		},
		{
			name:   "ошибка сервиса",
			fields: map[string]string{"amount": "50000", "type": "personal", "duration": "12"},
			email:  "user@example.com",
			setupMocks: func(l *MockLoanService, u *MockUserService) {
				u.On("Profile", mock.Anything, "user@example.com").Return(user, nil)
				l.On("Apply", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyLoan"),
					nil, nil).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to apply for loan"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loans := new(MockLoanService)
			users := new(MockUserService)
			tt.setupMocks(loans, users)

			handler := New(logger, loans, users)

			body, contentType := buildForm(t, tt.fields, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", body)
			req.Header.Set("Content-Type", contentType)
			if tt.email != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.email)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			loans.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}
