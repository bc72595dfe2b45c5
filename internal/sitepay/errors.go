package sitepay

import (
	"fmt"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// Error единая структурированная ошибка вызова шлюза. Все категории отказов
// (сетевые сбои, ответы не из диапазона 2xx, ошибки разбора ответа)
// представлены одним типом, чтобы вызывающий мог ветвиться по статусу и
// пополевым сообщениям без набора разных типов исключений.
// После создания ошибка не изменяется.
type Error struct {
	Message    string
	StatusCode int // 0, если HTTP-ответа не было
	Code       int // код ошибки шлюза
	Errors     []models.FieldError
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sitepay: %s (status %d)", e.Message, e.StatusCode)
	}
	return "sitepay: " + e.Message
}

// Unwrap возвращает исходную ошибку транспорта или разбора, если она есть.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsValidationError сообщает, отклонил ли шлюз запрос из-за ошибок валидации.
func (e *Error) IsValidationError() bool {
	for _, fe := range e.Errors {
		if fe.Kind == models.ErrorKindValidation {
			return true
		}
	}
	return false
}

// FieldMessages возвращает сообщения пополевых ошибок, сгруппированные
// по имени поля.
func (e *Error) FieldMessages() map[string][]string {
	if len(e.Errors) == 0 {
		return nil
	}
	result := make(map[string][]string)
	for _, fe := range e.Errors {
		result[fe.Field] = append(result[fe.Field], fe.Message)
	}
	return result
}

// retryable: сбои без HTTP-статуса (сеть, таймаут) и ответы 5xx можно
// повторять; 4xx — ошибка вызывающего, повтор не имеет смысла и может
// продублировать побочный эффект.
func (e *Error) retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}
