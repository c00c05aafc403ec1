// Package models содержит доменные структуры, описывающие доступ пациента
// к услугам нутрициолога, а также вспомогательные типы для работы с данными
// из внешних источников (например, JSON-запросы).
package models

import "time"

// Статусы доступа пациента. Других состояний (pending, trial) в модели нет.
const (
	// StatusActive — доступ пациента действует.
	StatusActive = "ACTIVE"
	// StatusInactive — доступ пациента отозван.
	StatusInactive = "INACTIVE"
)

// PatientAccess представляет собой основную модель доступа пациента,
// используемую в бизнес-логике, хранилище и биллинге.
// ActivatedAt заполняется всегда; DeactivatedAt может быть nil —
// это означает, что доступ не был отозван. Точность дат — календарный день,
// время суток в расчётах не учитывается. Запись не удаляется физически:
// после отзыва доступа история должна оставаться доступной для биллинга.
type PatientAccess struct {
	UID             string     // Уникальный идентификатор пациента
	Name            string     // Отображаемое имя пациента
	Email           string     // Электронная почта пациента
	NutritionistUID string     // Идентификатор нутрициолога-владельца
	Status          string     // Статус доступа: ACTIVE или INACTIVE
	ActivatedAt     time.Time  // Дата предоставления доступа
	DeactivatedAt   *time.Time // Дата отзыва доступа (nil, если доступ действует)
}

// DummyPatientAccess используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в PatientAccess.
// Дата активации приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyPatientAccess struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`         // Имя пациента
	Email       string `json:"email" validate:"required,email"`                // Электронная почта
	ActivatedAt string `json:"activated_at,omitempty" validate:"omitempty"`    // Дата активации в формате 02-01-2006 (опционально, по умолчанию сегодня)
}
