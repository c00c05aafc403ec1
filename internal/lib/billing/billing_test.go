package billing

import (
	"math"
	"testing"
	"time"

	"github.com/magabrotheeeer/nutrition-practice/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveCycle(t *testing.T) {
	tests := []struct {
		name          string
		ref           time.Time
		wantStart     time.Time
		wantEnd       time.Time
		wantDays      int
		wantMonth     time.Month
		wantYear      int
	}{
		{
			name:      "january has 31 days",
			ref:       date(2024, time.January, 15),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 31),
			wantDays:  31,
			wantMonth: time.January,
			wantYear:  2024,
		},
		{
			name:      "february of leap year has 29 days",
			ref:       date(2024, time.February, 10),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
			wantDays:  29,
			wantMonth: time.February,
			wantYear:  2024,
		},
		{
			name:      "february of non-leap year has 28 days",
			ref:       date(2023, time.February, 28),
			wantStart: date(2023, time.February, 1),
			wantEnd:   date(2023, time.February, 28),
			wantDays:  28,
			wantMonth: time.February,
			wantYear:  2023,
		},
		{
			name:      "december rolls over to next year correctly",
			ref:       date(2024, time.December, 31),
			wantStart: date(2024, time.December, 1),
			wantEnd:   date(2024, time.December, 31),
			wantDays:  31,
			wantMonth: time.December,
			wantYear:  2024,
		},
		{
			name:      "reference on first day of month",
			ref:       date(2024, time.June, 1),
			wantStart: date(2024, time.June, 1),
			wantEnd:   date(2024, time.June, 30),
			wantDays:  30,
			wantMonth: time.June,
			wantYear:  2024,
		},
		{
			name:      "time of day is ignored",
			ref:       time.Date(2024, time.April, 20, 23, 59, 59, 0, time.UTC),
			wantStart: date(2024, time.April, 1),
			wantEnd:   date(2024, time.April, 30),
			wantDays:  30,
			wantMonth: time.April,
			wantYear:  2024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCycle(tt.ref)
			if !got.CycleStart.Equal(tt.wantStart) {
				t.Errorf("CycleStart = %v, want %v", got.CycleStart, tt.wantStart)
			}
			if !got.CycleEnd.Equal(tt.wantEnd) {
				t.Errorf("CycleEnd = %v, want %v", got.CycleEnd, tt.wantEnd)
			}
			if got.DaysInCycle != tt.wantDays {
				t.Errorf("DaysInCycle = %d, want %d", got.DaysInCycle, tt.wantDays)
			}
			if got.Month != tt.wantMonth || got.Year != tt.wantYear {
				t.Errorf("Month/Year = %v/%d, want %v/%d", got.Month, got.Year, tt.wantMonth, tt.wantYear)
			}
			if !almostEqual(got.PricePerMonth, PricePerMonth) {
				t.Errorf("PricePerMonth = %v, want %v", got.PricePerMonth, PricePerMonth)
			}
		})
	}
}

func TestDailyRate(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		days  int
		want  float64
	}{
		{name: "30-day month", price: 10.0, days: 30, want: 10.0 / 30.0},
		{name: "31-day month", price: 10.0, days: 31, want: 10.0 / 31.0},
		{name: "leap february", price: 10.0, days: 29, want: 10.0 / 29.0},
		{name: "non-leap february", price: 10.0, days: 28, want: 10.0 / 28.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DailyRate(tt.price, tt.days); !almostEqual(got, tt.want) {
				t.Errorf("DailyRate(%v, %d) = %v, want %v", tt.price, tt.days, got, tt.want)
			}
		})
	}
}

func TestCountActiveDays(t *testing.T) {
	// Июнь 2024 — месяц из 30 дней.
	cycle := ResolveCycle(date(2024, time.June, 15))

	tests := []struct {
		name   string
		access models.PatientAccess
		want   int
	}{
		{
			name: "active for the full month",
			access: models.PatientAccess{
				Status:      models.StatusActive,
				ActivatedAt: date(2024, time.June, 1),
			},
			want: 30,
		},
		{
			name: "activated mid-month projects to cycle end",
			access: models.PatientAccess{
				Status:      models.StatusActive,
				ActivatedAt: date(2024, time.June, 5),
			},
			want: 26,
		},
		{
			name: "activated before cycle clips to cycle start",
			access: models.PatientAccess{
				Status:      models.StatusActive,
				ActivatedAt: date(2024, time.March, 10),
			},
			want: 30,
		},
		{
			name: "activated and deactivated on the same day counts as one",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.June, 12),
				DeactivatedAt: ptr(date(2024, time.June, 12)),
			},
			want: 1,
		},
		{
			name: "deactivated the day before cycle start",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.April, 1),
				DeactivatedAt: ptr(date(2024, time.May, 31)),
			},
			want: 0,
		},
		{
			name: "activated the day after cycle end",
			access: models.PatientAccess{
				Status:      models.StatusActive,
				ActivatedAt: date(2024, time.July, 1),
			},
			want: 0,
		},
		{
			name: "boundary days are both inclusive",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.June, 1),
				DeactivatedAt: ptr(date(2024, time.June, 30)),
			},
			want: 30,
		},
		{
			name: "deactivated mid-month",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.June, 5),
				DeactivatedAt: ptr(date(2024, time.June, 10)),
			},
			want: 6,
		},
		{
			name: "deactivation beyond cycle end clips to cycle end",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.June, 20),
				DeactivatedAt: ptr(date(2024, time.August, 15)),
			},
			want: 11,
		},
		{
			name: "inactive without deactivation date falls back to cycle end",
			access: models.PatientAccess{
				Status:      models.StatusInactive,
				ActivatedAt: date(2024, time.June, 28),
			},
			want: 3,
		},
		{
			name: "deactivation before activation degrades to zero",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   date(2024, time.June, 20),
				DeactivatedAt: ptr(date(2024, time.June, 10)),
			},
			want: 0,
		},
		{
			name: "time of day on timestamps is ignored",
			access: models.PatientAccess{
				Status:        models.StatusInactive,
				ActivatedAt:   time.Date(2024, time.June, 12, 18, 30, 0, 0, time.UTC),
				DeactivatedAt: ptr(time.Date(2024, time.June, 12, 7, 0, 0, 0, time.UTC)),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountActiveDays(tt.access, cycle)
			if got != tt.want {
				t.Errorf("CountActiveDays() = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Errorf("CountActiveDays() returned negative count %d", got)
			}
		})
	}
}

func TestCountActiveDays_LeapFebruary(t *testing.T) {
	cycle := ResolveCycle(date(2024, time.February, 1))
	if cycle.DaysInCycle != 29 {
		t.Fatalf("DaysInCycle = %d, want 29", cycle.DaysInCycle)
	}

	access := models.PatientAccess{
		Status:      models.StatusActive,
		ActivatedAt: date(2023, time.December, 1),
	}
	if got := CountActiveDays(access, cycle); got != 29 {
		t.Errorf("CountActiveDays() = %d, want 29", got)
	}
}

func TestCalculateEstimate(t *testing.T) {
	// Сценарий из требований: цена 10.00, месяц из 30 дней,
	// активация на 5-й и 10-й день.
	ref := date(2024, time.June, 15)
	patients := []models.PatientAccess{
		{
			UID:         "p-1",
			Name:        "Anna",
			Status:      models.StatusActive,
			ActivatedAt: date(2024, time.June, 5),
		},
		{
			UID:         "p-2",
			Name:        "Boris",
			Status:      models.StatusActive,
			ActivatedAt: date(2024, time.June, 10),
		},
	}

	got := CalculateEstimate(patients, ref)

	wantRate := 10.0 / 30.0
	if !almostEqual(got.DailyRate, wantRate) {
		t.Errorf("DailyRate = %v, want %v", got.DailyRate, wantRate)
	}
	if len(got.Details) != len(patients) {
		t.Fatalf("len(Details) = %d, want %d", len(got.Details), len(patients))
	}
	if got.Details[0].ActiveDays != 26 {
		t.Errorf("Details[0].ActiveDays = %d, want 26", got.Details[0].ActiveDays)
	}
	if got.Details[1].ActiveDays != 21 {
		t.Errorf("Details[1].ActiveDays = %d, want 21", got.Details[1].ActiveDays)
	}
	if !almostEqual(got.Details[0].Subtotal, 26*wantRate) {
		t.Errorf("Details[0].Subtotal = %v, want %v", got.Details[0].Subtotal, 26*wantRate)
	}

	// Порядок строк совпадает с порядком входного списка.
	if got.Details[0].PatientUID != "p-1" || got.Details[1].PatientUID != "p-2" {
		t.Errorf("details are out of input order: %v", got.Details)
	}

	var sum float64
	for _, d := range got.Details {
		sum += d.Subtotal
	}
	if !almostEqual(got.Total, sum) {
		t.Errorf("Total = %v, want sum of subtotals %v", got.Total, sum)
	}
}

func TestCalculateEstimate_EmptyInput(t *testing.T) {
	got := CalculateEstimate(nil, date(2024, time.June, 15))
	if got.Total != 0 {
		t.Errorf("Total = %v, want 0", got.Total)
	}
	if len(got.Details) != 0 {
		t.Errorf("len(Details) = %d, want 0", len(got.Details))
	}
}

func TestCalculateEstimate_Idempotent(t *testing.T) {
	ref := date(2024, time.June, 15)
	patients := []models.PatientAccess{
		{
			UID:           "p-1",
			Name:          "Anna",
			Status:        models.StatusInactive,
			ActivatedAt:   date(2024, time.June, 3),
			DeactivatedAt: ptr(date(2024, time.June, 20)),
		},
	}

	first := CalculateEstimate(patients, ref)
	second := CalculateEstimate(patients, ref)

	if first.Total != second.Total || first.DailyRate != second.DailyRate {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
	for i := range first.Details {
		if first.Details[i] != second.Details[i] {
			t.Errorf("Details[%d] differ: %v vs %v", i, first.Details[i], second.Details[i])
		}
	}
}
