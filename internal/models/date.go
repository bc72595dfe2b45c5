// Package models содержит типы данных платёжного шлюза: сущности ресурсов,
// платёжную форму hosted checkout и структуры ошибок.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты, в котором шлюз сериализует временные метки.
const DateLayout = "2006-01-02 15:04:05"

// Date оборачивает time.Time для (де)сериализации дат шлюза.
// Пустая строка и null разбираются в нулевое значение.
type Date struct {
	time.Time
}

// NewDate создает Date из time.Time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MarshalJSON сериализует дату в формате шлюза.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON разбирает дату из формата шлюза.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("models.Date: %w", err)
	}
	d.Time = t
	return nil
}
