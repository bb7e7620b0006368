package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/microlend/microloan/internal/lib/jwt"
	"github.com/microlend/microloan/internal/lib/password"
	"github.com/microlend/microloan/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) RegisterAdmin(ctx context.Context, admin models.Admin) (string, error) {
	args := m.Called(ctx, admin)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func mustHash(t *testing.T, raw string) string {
	t.Helper()
	hash, err := password.GetHash(raw)
	require.NoError(t, err)
	return hash
}

func newMaker() *jwt.MakerImpl {
	return jwt.NewMaker("test-secret-key", time.Hour)
}

func TestAuthService_RegisterUser(t *testing.T) {
	repo := new(MockRepository)
	service := NewAuthService(repo, newMaker())

	var saved models.User
	repo.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(models.User)
		}).
		Return("uid-123", nil).Once()

	uid, err := service.RegisterUser(context.Background(), models.DummyUser{
		FullName: "Test User",
		Email:    "user@example.com",
		Password: "Secret123",
		Aadhar:   "123456789012",
		PAN:      "ABCDE1234F",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	assert.Equal(t, models.RoleUser, saved.Role)
	assert.Equal(t, DefaultCibilScore, saved.CibilScore)
	assert.NotEqual(t, "Secret123", saved.PasswordHash)
	assert.NoError(t, password.CompareHash(saved.PasswordHash, "Secret123"))
	repo.AssertExpectations(t)
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	repo := new(MockRepository)
	service := NewAuthService(repo, newMaker())

	var saved models.Admin
	repo.On("RegisterAdmin", mock.Anything, mock.AnythingOfType("models.Admin")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(models.Admin)
		}).
		Return("uid-admin", nil).Once()

	uid, err := service.RegisterAdmin(context.Background(), models.DummyAdmin{
		Email:    "admin@example.com",
		Password: "Secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-admin", uid)
	assert.Equal(t, models.RoleAdmin, saved.Role)
	assert.NoError(t, password.CompareHash(saved.PasswordHash, "Secret123"))
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	userHash := mustHash(t, "UserPass1")
	adminHash := mustHash(t, "AdminPass1")

	tests := []struct {
		name         string
		email        string
		rawPassword  string
		setupMocks   func(*MockRepository)
		expectedRole models.Role
		expectedErr  error
	}{
		{
			name:        "success - user login",
			email:       "user@example.com",
			rawPassword: "UserPass1",
			setupMocks: func(r *MockRepository) {
				r.On("GetAdminByEmail", mock.Anything, "user@example.com").
					Return(nil, sql.ErrNoRows).Once()
				r.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(&models.User{
						Email:        "user@example.com",
						PasswordHash: userHash,
						Role:         models.RoleUser,
					}, nil).Once()
			},
			expectedRole: models.RoleUser,
		},
		{
			name:        "success - admin login",
			email:       "admin@example.com",
			rawPassword: "AdminPass1",
			setupMocks: func(r *MockRepository) {
				r.On("GetAdminByEmail", mock.Anything, "admin@example.com").
					Return(&models.Admin{
						Email:        "admin@example.com",
						PasswordHash: adminHash,
						Role:         models.RoleAdmin,
					}, nil).Once()
			},
			expectedRole: models.RoleAdmin,
		},
		{
			name:        "admin wins when email exists in both tables",
			email:       "both@example.com",
			rawPassword: "AdminPass1",
			setupMocks: func(r *MockRepository) {
				r.On("GetAdminByEmail", mock.Anything, "both@example.com").
					Return(&models.Admin{
						Email:        "both@example.com",
						PasswordHash: adminHash,
						Role:         models.RoleAdmin,
					}, nil).Once()
			},
			expectedRole: models.RoleAdmin,
		},
		{
			name:        "wrong password",
			email:       "user@example.com",
			rawPassword: "WrongPass",
			setupMocks: func(r *MockRepository) {
				r.On("GetAdminByEmail", mock.Anything, "user@example.com").
					Return(nil, sql.ErrNoRows).Once()
				r.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(&models.User{
						Email:        "user@example.com",
						PasswordHash: userHash,
						Role:         models.RoleUser,
					}, nil).Once()
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			rawPassword: "UserPass1",
			setupMocks: func(r *MockRepository) {
				r.On("GetAdminByEmail", mock.Anything, "nobody@example.com").
					Return(nil, sql.ErrNoRows).Once()
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, sql.ErrNoRows).Once()
			},
			expectedErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewAuthService(repo, newMaker())
			tt.setupMocks(repo)

			token, role, err := service.Login(context.Background(), tt.email, tt.rawPassword)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.expectedRole, role)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginTokenClaims(t *testing.T) {
	adminHash := mustHash(t, "Secret123")
	repo := new(MockRepository)
	service := NewAuthService(repo, newMaker())

	repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").
		Return(&models.Admin{
			Email:        "admin@example.com",
			PasswordHash: adminHash,
			Role:         models.RoleAdmin,
		}, nil).Once()

	token, _, err := service.Login(context.Background(), "admin@example.com", "Secret123")
	require.NoError(t, err)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateTokenInvalid(t *testing.T) {
	repo := new(MockRepository)
	service := NewAuthService(repo, newMaker())

	_, err := service.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenInvalid))
}
