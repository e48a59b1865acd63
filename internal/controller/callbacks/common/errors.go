package common

import (
	"errors"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var vErr *model.ValidationError

	switch {
	case errors.Is(err, model.ErrAlarmNotFound):
		return "❌ Напоминание не найдено"
	case errors.Is(err, model.ErrDraftExpired):
		return "❌ Время этого предложения прошло, запросите новые: /suggest"
	case errors.Is(err, model.ErrDraftTooEarly):
		return "⏳ Это напоминание можно добавить не раньше чем за сутки до срабатывания"
	case errors.Is(err, model.ErrDraftNotFound):
		return "❌ Предложение устарело, запросите новые: /suggest"
	case errors.Is(err, model.ErrSnoozeDisabled):
		return "❌ Для этого напоминания откладывание выключено"
	case errors.Is(err, model.ErrSnoozeTooLong):
		return "❌ Отложить можно меньше чем на сутки"
	case errors.Is(err, model.ErrUnknownSound):
		return "❌ Неизвестный звук"
	case errors.As(err, &vErr):
		return "❌ Неверные параметры напоминания"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
