// Package services содержит планировщик рассылки биллинговых сводок.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/lib/billing"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/nutrition-practice/internal/lib/sl"
	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// NutritionistRepository описывает выборку нутрициологов для рассылки.
type NutritionistRepository interface {
	// ListNutritionistsWithPatients возвращает нутрициологов,
	// у которых есть хотя бы одна запись доступа пациента.
	ListNutritionistsWithPatients(ctx context.Context) ([]*models.User, error)
}

// Estimator считает оценку стоимости текущего цикла для нутрициолога.
type Estimator interface {
	Estimate(ctx context.Context, nutritionistUID string, ref time.Time) (*billing.Estimate, error)
}

// SchedulerService периодически считает биллинговые сводки и публикует их
// в очередь уведомлений.
type SchedulerService struct {
	repo      NutritionistRepository
	estimator Estimator
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo NutritionistRepository, estimator Estimator, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		estimator: estimator,
		log:       log,
	}
}

// SendBillingSummaries запускает ежедневный цикл рассылки сводок.
// Первый проход выполняется сразу, далее раз в 24 часа.
func (s *SchedulerService) SendBillingSummaries(ctx context.Context, channel rabbitmq.Channel) {
	s.runSendBillingSummaries(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runSendBillingSummaries(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runSendBillingSummaries(ctx context.Context, channel rabbitmq.Channel) {
	s.log.Info("starting billing summary run")
	nutritionists, err := s.repo.ListNutritionistsWithPatients(ctx)
	if err != nil {
		s.log.Error("failed to list nutritionists", sl.Err(err))
		return
	}
	if len(nutritionists) == 0 {
		s.log.Info("no nutritionists with patients found")
		return
	}
	s.log.Info("found nutritionists with patients", "count", len(nutritionists))

	ref := time.Now().UTC()
	for _, nutritionist := range nutritionists {
		estimate, err := s.estimator.Estimate(ctx, nutritionist.UUID, ref)
		if err != nil {
			s.log.Error("failed to calculate estimate",
				"nutritionist_uid", nutritionist.UUID, sl.Err(err))
			continue
		}
		summary := billing.Summary{
			Email:    nutritionist.Email,
			Username: nutritionist.Username,
			Estimate: *estimate,
		}
		err = rabbitmq.PublishMessage(channel, "notifications", rabbitmq.BillingSummaryRoutingKey, summary)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
