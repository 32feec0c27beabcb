package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	// Возвращается до любой записи в хранилище.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (повторная финализация игры, дубликат участника, запись очков в закрытую игру).
	ErrConflict = errors.New("resource state conflict")
)

// IsValidation сообщает, является ли err ошибкой валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
