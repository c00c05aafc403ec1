package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// MockPatientRepository реализует интерфейс PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) CreatePatientAccess(ctx context.Context, access models.PatientAccess) (string, error) {
	args := m.Called(ctx, access)
	return args.String(0), args.Error(1)
}

func (m *MockPatientRepository) ReadPatientAccess(ctx context.Context, uid string) (*models.PatientAccess, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PatientAccess), args.Error(1)
}

func (m *MockPatientRepository) ListPatientAccess(ctx context.Context, nutritionistUID string, limit, offset int) ([]*models.PatientAccess, error) {
	args := m.Called(ctx, nutritionistUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PatientAccess), args.Error(1)
}

func (m *MockPatientRepository) DeactivatePatientAccess(ctx context.Context, uid, nutritionistUID string, deactivatedAt time.Time) (int, error) {
	args := m.Called(ctx, uid, nutritionistUID, deactivatedAt)
	return args.Int(0), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestPatientService_Grant(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name            string
		req             models.DummyPatientAccess
		wantActivatedAt time.Time
		wantErr         bool
	}{
		{
			name:            "activation date defaults to today",
			req:             models.DummyPatientAccess{Name: "Anna", Email: "anna@example.com"},
			wantActivatedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:            "explicit activation date",
			req:             models.DummyPatientAccess{Name: "Anna", Email: "anna@example.com", ActivatedAt: "05-06-2024"},
			wantActivatedAt: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "malformed activation date",
			req:     models.DummyPatientAccess{Name: "Anna", Email: "anna@example.com", ActivatedAt: "2024/06/05"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPatientRepository)
			cache := new(MockCache)

			if !tt.wantErr {
				repo.On("CreatePatientAccess", mock.Anything, mock.MatchedBy(func(a models.PatientAccess) bool {
					return a.Status == models.StatusActive &&
						a.NutritionistUID == "nut-1" &&
						a.ActivatedAt.Equal(tt.wantActivatedAt) &&
						a.DeactivatedAt == nil
				})).Return("patient-uid", nil)
				cache.On("Set", "patient:patient-uid", mock.Anything, time.Hour).Return(nil)
			}

			service := NewPatientService(repo, cache, newTestLogger())

			uid, err := service.Grant(context.Background(), "nut-1", tt.req, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "patient-uid", uid)
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPatientService_Grant_CacheFailureIsNotFatal(t *testing.T) {
	repo := new(MockPatientRepository)
	cache := new(MockCache)

	repo.On("CreatePatientAccess", mock.Anything, mock.Anything).Return("patient-uid", nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	service := NewPatientService(repo, cache, newTestLogger())

	uid, err := service.Grant(context.Background(), "nut-1",
		models.DummyPatientAccess{Name: "Anna", Email: "anna@example.com"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "patient-uid", uid)
}

func TestPatientService_Revoke(t *testing.T) {
	now := time.Date(2024, 6, 20, 9, 30, 0, 0, time.UTC)
	wantDeactivatedAt := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	repo := new(MockPatientRepository)
	cache := new(MockCache)

	cache.On("Invalidate", "patient:patient-uid").Return(nil)
	repo.On("DeactivatePatientAccess", mock.Anything, "patient-uid", "nut-1", wantDeactivatedAt).Return(1, nil)

	service := NewPatientService(repo, cache, newTestLogger())

	count, err := service.Revoke(context.Background(), "patient-uid", "nut-1", now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPatientService_Read_CacheHit(t *testing.T) {
	repo := new(MockPatientRepository)
	cache := new(MockCache)

	cached := &models.PatientAccess{UID: "patient-uid", Name: "Anna"}
	cache.On("Get", "patient:patient-uid", mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(**models.PatientAccess)
		*ptr = cached
	}).Return(true, nil)

	service := NewPatientService(repo, cache, newTestLogger())

	got, err := service.Read(context.Background(), "patient-uid")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	repo.AssertNotCalled(t, "ReadPatientAccess")
}

func TestPatientService_Read_CacheMiss(t *testing.T) {
	repo := new(MockPatientRepository)
	cache := new(MockCache)

	stored := &models.PatientAccess{UID: "patient-uid", Name: "Anna"}
	cache.On("Get", "patient:patient-uid", mock.Anything).Return(false, nil)
	repo.On("ReadPatientAccess", mock.Anything, "patient-uid").Return(stored, nil)
	cache.On("Set", "patient:patient-uid", stored, time.Hour).Return(nil)

	service := NewPatientService(repo, cache, newTestLogger())

	got, err := service.Read(context.Background(), "patient-uid")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
