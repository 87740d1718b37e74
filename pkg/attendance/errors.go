package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidDate    = errors.New("invalid date")
)

// MalformedInputError - отсутствует обязательное поле или неверный тип значения.
// Row - номер записи (или строки таблицы, если ошибку сформировал парсер файла).
type MalformedInputError struct {
	Row    int
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed input at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed input at row %d, field %q: %s", e.Row, e.Field, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// InvalidDateError - дата начала недели не может быть разобрана
type InvalidDateError struct {
	Value  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid week start date: %s", e.Reason)
	}
	return fmt.Sprintf("invalid week start date %q: %s", e.Value, e.Reason)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}
