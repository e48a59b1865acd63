package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlarmNotFound  = errors.New("alarm not found")
	ErrUnknownSound   = errors.New("unknown sound")
	ErrSnoozeDisabled = errors.New("snooze is disabled for this alarm")
	ErrDraftNotFound  = errors.New("suggestion draft not found")
	ErrSnoozeTooLong  = errors.New("snooze interval must be shorter than a day")
	ErrDraftExpired   = errors.New("suggestion draft time has passed")
	ErrDraftTooEarly  = errors.New("suggestion draft fires more than a day ahead")
)

// FieldError описывает ошибку в одном поле
type FieldError struct {
	Field   string
	Message string
}

// ValidationError ошибка конфигурации напоминания, отклоняется при записи
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "invalid alarm: " + strings.Join(parts, "; ")
}
