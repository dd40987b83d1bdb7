package service

import (
	"testing"
	"time"

	"github.com/velmark/fitness-contest/internal/models"
)

func TestNormalizeMonth(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	in := time.Date(2025, time.March, 17, 15, 42, 7, 0, loc)
	got := NormalizeMonth(in)
	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("NormalizeMonth(%v) = %v, ожидали %v", in, got, want)
	}
	// идемпотентность
	if !NormalizeMonth(got).Equal(got) {
		t.Fatal("повторная нормализация изменила значение")
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		month time.Time
		want  PeriodClass
	}{
		{"текущий месяц", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), PeriodCurrent},
		{"прошлый месяц", time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), PeriodHistorical},
		{"будущий месяц", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), PeriodHistorical},
		{"тот же месяц прошлого года", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), PeriodHistorical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &models.Competition{YearMonth: tc.month}
			if got := Classify(c, now); got != tc.want {
				t.Fatalf("Classify(%v, %v) = %v, ожидали %v", tc.month, now, got, tc.want)
			}
		})
	}
}

func TestClassify_MonthBoundary(t *testing.T) {
	march := &models.Competition{YearMonth: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)}

	lastSecond := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
	if Classify(march, lastSecond) != PeriodCurrent {
		t.Fatal("последняя секунда месяца ещё относится к текущему периоду")
	}
	firstSecond := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if Classify(march, firstSecond) != PeriodHistorical {
		t.Fatal("с началом нового месяца период становится историческим")
	}
}
