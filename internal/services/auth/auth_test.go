package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nutrition-practice/internal/lib/jwt"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/password"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// MockUserRepository реализует интерфейс UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	service := NewAuthService(repo, maker)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Пароль не должен храниться открытым текстом.
		return u.Username == "dr.ivanova" &&
			u.Role == "nutritionist" &&
			u.PasswordHash != "secret123" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("uid-123", nil)

	uid, err := service.Register(context.Background(), "ivanova@example.com", "dr.ivanova", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		pass      string
		setupMock func(*MockUserRepository)
		wantErr   bool
		wantRole  string
	}{
		{
			name:     "successful login",
			username: "dr.ivanova",
			pass:     "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "dr.ivanova").Return(&models.User{
					UUID:         "uid-123",
					Username:     "dr.ivanova",
					PasswordHash: hash,
					Role:         "nutritionist",
				}, nil)
			},
			wantErr:  false,
			wantRole: "nutritionist",
		},
		{
			name:     "wrong password",
			username: "dr.ivanova",
			pass:     "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "dr.ivanova").Return(&models.User{
					UUID:         "uid-123",
					Username:     "dr.ivanova",
					PasswordHash: hash,
					Role:         "nutritionist",
				}, nil)
			},
			wantErr: true,
		},
		{
			name:     "unknown user",
			username: "ghost",
			pass:     "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, errors.New("not found"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			maker := jwt.NewJWTMaker("test-secret", time.Hour)
			service := NewAuthService(repo, maker)

			token, role, err := service.Login(context.Background(), tt.username, tt.pass)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.wantRole, role)

			// Токен должен валидироваться тем же сервисом.
			user, valid, err := service.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.True(t, valid)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, "uid-123", user.UUID)
		})
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	repo := new(MockUserRepository)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	service := NewAuthService(repo, maker)

	_, valid, err := service.ValidateToken(context.Background(), "garbage")
	assert.Error(t, err)
	assert.False(t, valid)
}
