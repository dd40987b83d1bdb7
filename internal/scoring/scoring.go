package scoring

import (
	"fmt"

	"github.com/velmark/fitness-contest/internal/models"
)

// Validate проверяет целостность шкалы: ступени идут по возрастанию,
// покрывают весь диапазон [0, +inf) без дыр и перекрытий, последняя
// ступень открыта сверху, баллы положительны и не убывают.
// Вызывается при создании/изменении активности, а не на каждый расчёт.
func Validate(table models.TierTable) error {
	tiers := table.Tiers
	if len(tiers) == 0 {
		return fmt.Errorf("%w: шкала пуста", models.ErrMisconfiguredTiers)
	}
	if tiers[0].Min != 0 {
		return fmt.Errorf("%w: первая ступень должна начинаться с 0, а не с %v", models.ErrMisconfiguredTiers, tiers[0].Min)
	}
	for i, t := range tiers {
		if t.Points <= 0 {
			return fmt.Errorf("%w: ступень %d: баллы должны быть положительными", models.ErrMisconfiguredTiers, i+1)
		}
		if i > 0 && t.Points < tiers[i-1].Points {
			return fmt.Errorf("%w: ступень %d: баллы не могут убывать", models.ErrMisconfiguredTiers, i+1)
		}
		last := i == len(tiers)-1
		if last {
			if t.Max != nil {
				return fmt.Errorf("%w: последняя ступень должна быть открытой сверху", models.ErrMisconfiguredTiers)
			}
			continue
		}
		if t.Max == nil {
			return fmt.Errorf("%w: только последняя ступень может быть без верхней границы", models.ErrMisconfiguredTiers)
		}
		if *t.Max <= t.Min {
			return fmt.Errorf("%w: ступень %d: верхняя граница %v не больше нижней %v", models.ErrMisconfiguredTiers, i+1, *t.Max, t.Min)
		}
		if *t.Max != tiers[i+1].Min {
			return fmt.Errorf("%w: разрыв между ступенями %d и %d", models.ErrMisconfiguredTiers, i+1, i+2)
		}
	}
	return nil
}

// Score возвращает баллы за значение value по шкале table.
// Нижняя граница ступени включается, верхняя — нет: ровно 50 км
// попадает в ступень 50–100, а не 0–50.
func Score(table models.TierTable, value float64) (int, error) {
	if value < 0 {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidValue, value)
	}
	if err := Validate(table); err != nil {
		return 0, err
	}
	for _, t := range table.Tiers {
		if t.Max == nil {
			if value >= t.Min {
				return t.Points, nil
			}
			continue
		}
		if value >= t.Min && value < *t.Max {
			return t.Points, nil
		}
	}
	// недостижимо для валидной шкалы
	return 0, fmt.Errorf("%w: значение %v вне шкалы", models.ErrMisconfiguredTiers, value)
}
