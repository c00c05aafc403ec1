// Package services содержит бизнес-логику для управления доступом пациентов и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// PatientRepository определяет методы для работы с записями доступа пациентов в хранилище.
type PatientRepository interface {
	// CreatePatientAccess добавляет новую запись доступа и возвращает её UID.
	CreatePatientAccess(ctx context.Context, access models.PatientAccess) (string, error)
	// ReadPatientAccess возвращает запись доступа по UID.
	ReadPatientAccess(ctx context.Context, uid string) (*models.PatientAccess, error)
	// ListPatientAccess возвращает список записей для нутрициолога с пагинацией.
	ListPatientAccess(ctx context.Context, nutritionistUID string, limit, offset int) ([]*models.PatientAccess, error)
	// DeactivatePatientAccess отзывает доступ и возвращает количество изменённых записей.
	DeactivatePatientAccess(ctx context.Context, uid, nutritionistUID string, deactivatedAt time.Time) (int, error)
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

// PatientService реализует бизнес-логику работы с доступом пациентов, включая кеширование.
type PatientService struct {
	repo  PatientRepository
	cache Cache
	log   *slog.Logger
}

// NewPatientService создает новый экземпляр PatientService.
func NewPatientService(repo PatientRepository, cache Cache, log *slog.Logger) *PatientService {
	return &PatientService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Grant предоставляет пациенту доступ от имени нутрициолога и возвращает UID записи.
// Дата активации берётся из запроса или, если не указана, из now.
// Время суток отбрасывается: биллинг работает с точностью до календарного дня.
func (s *PatientService) Grant(ctx context.Context, nutritionistUID string, req models.DummyPatientAccess, now time.Time) (string, error) {
	activatedAt := now.UTC().Truncate(24 * time.Hour)
	if req.ActivatedAt != "" {
		parsed, err := time.Parse("02-01-2006", req.ActivatedAt)
		if err != nil {
			return "", fmt.Errorf("invalid activation date: %w", err)
		}
		activatedAt = parsed
	}

	access := models.PatientAccess{
		Name:            req.Name,
		Email:           req.Email,
		NutritionistUID: nutritionistUID,
		Status:          models.StatusActive,
		ActivatedAt:     activatedAt,
	}

	uid, err := s.repo.CreatePatientAccess(ctx, access)
	if err != nil {
		return "", err
	}

	s.log.Info("granted patient access", slog.String("uid", uid))

	access.UID = uid
	cacheKey := fmt.Sprintf("patient:%s", uid)
	if err := s.cache.Set(cacheKey, access, time.Hour); err != nil {
		s.log.Warn("failed to cache patient access", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return uid, nil
}

// Revoke отзывает доступ пациента и инвалидирует кеш.
// Запись остаётся в хранилище со статусом INACTIVE и датой отзыва.
func (s *PatientService) Revoke(ctx context.Context, uid, nutritionistUID string, now time.Time) (int, error) {
	cacheKey := fmt.Sprintf("patient:%s", uid)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	deactivatedAt := now.UTC().Truncate(24 * time.Hour)
	count, err := s.repo.DeactivatePatientAccess(ctx, uid, nutritionistUID, deactivatedAt)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Read возвращает запись доступа по UID, используя кеш или репозиторий.
func (s *PatientService) Read(ctx context.Context, uid string) (*models.PatientAccess, error) {
	var result *models.PatientAccess
	cacheKey := fmt.Sprintf("patient:%s", uid)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadPatientAccess(ctx, uid)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// List возвращает список записей доступа нутрициолога с пагинацией.
func (s *PatientService) List(ctx context.Context, nutritionistUID string, limit, offset int) ([]*models.PatientAccess, error) {
	return s.repo.ListPatientAccess(ctx, nutritionistUID, limit, offset)
}
