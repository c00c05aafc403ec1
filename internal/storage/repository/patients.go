package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// CreatePatientAccess вставляет новую запись доступа пациента и возвращает её UID.
func (s *Storage) CreatePatientAccess(ctx context.Context, access models.PatientAccess) (string, error) {
	const op = "storage.CreatePatientAccess"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO patient_access (name, email, nutritionist_uid, status, activated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		access.Name, access.Email, access.NutritionistUID, access.Status, access.ActivatedAt).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// ReadPatientAccess возвращает запись доступа пациента по её UID.
func (s *Storage) ReadPatientAccess(ctx context.Context, uid string) (*models.PatientAccess, error) {
	const op = "storage.ReadPatientAccess"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, nutritionist_uid, status, activated_at, deactivated_at
			  FROM patient_access WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var result models.PatientAccess
	var deactivatedAt sql.NullTime
	if err := row.Scan(&result.UID, &result.Name, &result.Email, &result.NutritionistUID,
		&result.Status, &result.ActivatedAt, &deactivatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if deactivatedAt.Valid {
		result.DeactivatedAt = &deactivatedAt.Time
	}
	return &result, nil
}

// ListPatientAccess возвращает список записей доступа для нутрициолога с пагинацией.
func (s *Storage) ListPatientAccess(ctx context.Context, nutritionistUID string, limit, offset int) ([]*models.PatientAccess, error) {
	const op = "storage.ListPatientAccess"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, nutritionist_uid, status, activated_at, deactivated_at
			  FROM patient_access
			  WHERE nutritionist_uid = $1
			  ORDER BY activated_at, uid
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, nutritionistUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.PatientAccess
	for rows.Next() {
		var item models.PatientAccess
		var deactivatedAt sql.NullTime
		if err := rows.Scan(&item.UID, &item.Name, &item.Email, &item.NutritionistUID,
			&item.Status, &item.ActivatedAt, &deactivatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deactivatedAt.Valid {
			item.DeactivatedAt = &deactivatedAt.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListBillablePatientAccess возвращает все записи доступа нутрициолога,
// релевантные для расчёта за цикл, начинающийся cycleStart: активные
// и деактивированные не раньше начала цикла.
func (s *Storage) ListBillablePatientAccess(ctx context.Context, nutritionistUID string, cycleStart time.Time) ([]models.PatientAccess, error) {
	const op = "storage.ListBillablePatientAccess"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, nutritionist_uid, status, activated_at, deactivated_at
			  FROM patient_access
			  WHERE nutritionist_uid = $1
			    AND (status = 'ACTIVE' OR deactivated_at IS NULL OR deactivated_at >= $2)
			  ORDER BY activated_at, uid`
	rows, err := s.DB.QueryContext(ctx, query, nutritionistUID, cycleStart)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []models.PatientAccess
	for rows.Next() {
		var item models.PatientAccess
		var deactivatedAt sql.NullTime
		if err := rows.Scan(&item.UID, &item.Name, &item.Email, &item.NutritionistUID,
			&item.Status, &item.ActivatedAt, &deactivatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deactivatedAt.Valid {
			item.DeactivatedAt = &deactivatedAt.Time
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeactivatePatientAccess отзывает доступ пациента: статус становится INACTIVE,
// deactivated_at заполняется. Запись не удаляется, история остаётся доступной
// для биллинга. Возвращает количество изменённых строк.
func (s *Storage) DeactivatePatientAccess(ctx context.Context, uid, nutritionistUID string, deactivatedAt time.Time) (int, error) {
	const op = "storage.DeactivatePatientAccess"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE patient_access
			  SET status = 'INACTIVE', deactivated_at = $1
			  WHERE uid = $2 AND nutritionist_uid = $3 AND status = 'ACTIVE'`
	result, err := s.DB.ExecContext(ctx, query, deactivatedAt, uid, nutritionistUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
