package models

import "errors"

// Ошибки доменного уровня. Проверяются через errors.Is,
// обёртки добавляют контекст через fmt.Errorf("...: %w", err).
var (
	ErrInvalidValue       = errors.New("значение должно быть неотрицательным числом")
	ErrUnknownActivity    = errors.New("активность не найдена")
	ErrMisconfiguredTiers = errors.New("шкала активности настроена неверно")
	ErrPeriodClosed       = errors.New("период закрыт для новых записей")
	ErrForbidden          = errors.New("доступ запрещён")
)
