// Package services содержит бизнес-логику расчёта оценки стоимости за текущий цикл.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/lib/billing"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// BillingRepository описывает выборку записей доступа, релевантных для расчёта.
type BillingRepository interface {
	// ListBillablePatientAccess возвращает записи нутрициолога, попадающие
	// в цикл, начинающийся cycleStart.
	ListBillablePatientAccess(ctx context.Context, nutritionistUID string, cycleStart time.Time) ([]models.PatientAccess, error)
}

// BillingEstimateService считает оценку стоимости текущего месяца для нутрициолога.
type BillingEstimateService struct {
	repo BillingRepository
	log  *slog.Logger
}

// NewBillingEstimateService создает новый экземпляр BillingEstimateService.
func NewBillingEstimateService(repo BillingRepository, log *slog.Logger) *BillingEstimateService {
	return &BillingEstimateService{
		repo: repo,
		log:  log,
	}
}

// Estimate возвращает оценку стоимости цикла, содержащего опорное время ref.
// Одно и то же ref всегда даёт один и тот же результат на одних и тех же данных.
func (s *BillingEstimateService) Estimate(ctx context.Context, nutritionistUID string, ref time.Time) (*billing.Estimate, error) {
	cycle := billing.ResolveCycle(ref)

	patients, err := s.repo.ListBillablePatientAccess(ctx, nutritionistUID, cycle.CycleStart)
	if err != nil {
		return nil, err
	}

	estimate := billing.CalculateEstimate(patients, ref)

	s.log.Info("calculated billing estimate",
		slog.String("nutritionist_uid", nutritionistUID),
		slog.Int("patients", len(estimate.Details)),
		slog.Float64("total", estimate.Total))

	return &estimate, nil
}
