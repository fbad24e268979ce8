package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind - класс ошибки валидации входных данных
type ErrorKind string

const (
	ErrorKindInvalidRange   ErrorKind = "InvalidRange"
	ErrorKindInvalidEnum    ErrorKind = "InvalidEnum"
	ErrorKindMalformedInput ErrorKind = "MalformedInput"
)

var (
	ErrInvalidRange   = errors.New("invalid range")
	ErrInvalidEnum    = errors.New("invalid enum value")
	ErrMalformedInput = errors.New("malformed input")

	ErrListingNotFound = errors.New("listing not found")
)

// ValidationError - ошибка одного поля формы
type ValidationError struct {
	Field   string
	Kind    ErrorKind
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Kind)
}

// Unwrap позволяет проверять класс ошибки через errors.Is
func (e ValidationError) Unwrap() error {
	switch e.Kind {
	case ErrorKindInvalidRange:
		return ErrInvalidRange
	case ErrorKindInvalidEnum:
		return ErrInvalidEnum
	case ErrorKindMalformedInput:
		return ErrMalformedInput
	}
	return nil
}

// ValidationErrors - список ошибок по полям
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, ve := range e {
		errs[i] = ve
	}
	return errs
}

// HasKind - есть ли в списке ошибка заданного класса
func (e ValidationErrors) HasKind(kind ErrorKind) bool {
	for _, ve := range e {
		if ve.Kind == kind {
			return true
		}
	}
	return false
}
