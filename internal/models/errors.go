package models

// ErrorKind различает ошибки валидации запроса и исключения на стороне шлюза.
type ErrorKind string

const (
	// ErrorKindValidation — шлюз отклонил конкретные поля запроса.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindException — внутренняя ошибка обработки на стороне шлюза.
	ErrorKindException ErrorKind = "exception"
)

// FieldError одна запись из списка ошибок ответа шлюза.
type FieldError struct {
	Code    int       `json:"code,omitempty"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"type"`
	Field   string    `json:"field,omitempty"`
}
