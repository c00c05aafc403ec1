// Package billing реализует расчёт помесячной стоимости доступа пациентов
// с пропорциональным учётом по дням (proration).
//
// Биллинговый цикл — один календарный месяц. Стоимость пациента за цикл
// считается как количество активных дней, умноженное на дневную ставку
// (фиксированная месячная цена, делённая на число дней в месяце).
// Все функции пакета чистые: опорное время передаётся параметром,
// системные часы внутри пакета не читаются.
package billing

import (
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

// PricePerMonth — фиксированная месячная цена за одного пациента.
// Тарифных планов в модели нет, цена едина для всех.
const PricePerMonth = 10.0

const day = 24 * time.Hour

// Cycle описывает один биллинговый цикл — календарный месяц.
// CycleStart и CycleEnd — первый и последний день месяца на начало суток
// (именно начало суток, а не конец: разница дат в днях считается ниже
// включительно по обеим границам). Month хранится 1-базным (time.Month).
type Cycle struct {
	Month         time.Month // Месяц цикла (1-базный)
	Year          int        // Год цикла
	CycleStart    time.Time  // Первый день месяца, 00:00 UTC
	CycleEnd      time.Time  // Последний день месяца, 00:00 UTC
	DaysInCycle   int        // Число календарных дней в месяце (28-31)
	PricePerMonth float64    // Месячная цена за пациента
}

// ResolveCycle возвращает биллинговый цикл для календарного месяца,
// содержащего опорное время ref.
//
// Последний день месяца вычисляется как "нулевой день следующего месяца":
// календарная арифметика сама даёт правильную длину месяца и високосные
// годы, таблица длин месяцев не нужна.
func ResolveCycle(ref time.Time) Cycle {
	year, month, _ := ref.UTC().Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return Cycle{
		Month:         month,
		Year:          year,
		CycleStart:    start,
		CycleEnd:      end,
		DaysInCycle:   end.Day(),
		PricePerMonth: PricePerMonth,
	}
}

// DailyRate возвращает дневную ставку: месячная цена, делённая на число
// дней в цикле. Округление не применяется — форматирование суммы остаётся
// на стороне представления.
func DailyRate(pricePerMonth float64, daysInCycle int) float64 {
	return pricePerMonth / float64(daysInCycle)
}

// CountActiveDays считает количество дней в пределах цикла [CycleStart,
// CycleEnd], когда доступ пациента был активен. Обе границы включительны:
// активация и деактивация в один и тот же день дают ровно 1 день.
//
// Правила в порядке приоритета:
//  1. Доступ отозван до начала цикла — 0 дней.
//  2. Доступ предоставлен после конца цикла — 0 дней.
//  3. Начало активного периода — максимум из даты активации и начала цикла.
//  4. Конец активного периода: для ACTIVE — конец цикла (оценка в
//     предположении, что доступ сохранится до конца месяца); для INACTIVE —
//     дата деактивации, обрезанная по концу цикла.
//  5. Если конец раньше начала (например, деактивация раньше активации) — 0.
//
// Функция не возвращает ошибок: любые некорректные данные деградируют в 0.
func CountActiveDays(access models.PatientAccess, cycle Cycle) int {
	activatedAt := startOfDay(access.ActivatedAt)

	if access.Status == models.StatusInactive && access.DeactivatedAt != nil &&
		startOfDay(*access.DeactivatedAt).Before(cycle.CycleStart) {
		return 0
	}

	if activatedAt.After(cycle.CycleEnd) {
		return 0
	}

	effectiveStart := activatedAt
	if effectiveStart.Before(cycle.CycleStart) {
		effectiveStart = cycle.CycleStart
	}

	effectiveEnd := cycle.CycleEnd
	if access.Status == models.StatusInactive && access.DeactivatedAt != nil {
		if deactivatedAt := startOfDay(*access.DeactivatedAt); deactivatedAt.Before(cycle.CycleEnd) {
			effectiveEnd = deactivatedAt
		}
	}

	if effectiveEnd.Before(effectiveStart) {
		return 0
	}

	return int(effectiveEnd.Sub(effectiveStart)/day) + 1
}

// CostDetail — строка расчёта по одному пациенту.
type CostDetail struct {
	PatientUID string  `json:"patient_uid"` // Идентификатор пациента
	Name       string  `json:"name"`        // Имя пациента
	ActiveDays int     `json:"active_days"` // Число активных дней в цикле
	DailyRate  float64 `json:"daily_rate"`  // Применённая дневная ставка
	Subtotal   float64 `json:"subtotal"`    // ActiveDays * DailyRate
}

// Estimate — итог расчёта за цикл: общая сумма и строки по пациентам
// в порядке входного списка.
type Estimate struct {
	Cycle     Cycle        `json:"cycle"`
	DailyRate float64      `json:"daily_rate"`
	Total     float64      `json:"total"`
	Details   []CostDetail `json:"details"`
}

// CalculateEstimate считает оценку стоимости текущего цикла для списка
// пациентов. Цикл определяется по опорному времени ref, строки идут
// в порядке входного списка, Total — сумма всех Subtotal.
// Пустой список даёт нулевую сумму и пустой список строк.
func CalculateEstimate(patients []models.PatientAccess, ref time.Time) Estimate {
	cycle := ResolveCycle(ref)
	rate := DailyRate(cycle.PricePerMonth, cycle.DaysInCycle)

	details := make([]CostDetail, 0, len(patients))
	var total float64
	for _, p := range patients {
		activeDays := CountActiveDays(p, cycle)
		subtotal := float64(activeDays) * rate
		details = append(details, CostDetail{
			PatientUID: p.UID,
			Name:       p.Name,
			ActiveDays: activeDays,
			DailyRate:  rate,
			Subtotal:   subtotal,
		})
		total += subtotal
	}

	return Estimate{
		Cycle:     cycle,
		DailyRate: rate,
		Total:     total,
		Details:   details,
	}
}

// Summary — сообщение с биллинговой сводкой для рассылки нутрициологу.
type Summary struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Estimate Estimate `json:"estimate"`
}

// startOfDay отбрасывает время суток: даты активации и деактивации
// учитываются с точностью до календарного дня.
func startOfDay(t time.Time) time.Time {
	year, month, d := t.UTC().Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
