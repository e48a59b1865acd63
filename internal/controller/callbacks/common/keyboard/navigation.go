package keyboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/formatting"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// BackToAlarmsButton создаёт кнопку "К напоминаниям"
func BackToAlarmsButton() models.InlineKeyboardButton {
	return Button("⬅️ К напоминаниям", "back_to_alarms")
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// AlarmPrompt кнопки ответа на сработавшее напоминание
func AlarmPrompt(alarmID string, actions []model.Action, snoozeMinutes int) *models.InlineKeyboardMarkup {
	row := []models.InlineKeyboardButton{
		Button("✅ Выключить", fmt.Sprintf("alarm_dismiss:%s", alarmID)),
	}
	if slices.Contains(actions, model.ActionSnooze) {
		row = append(row, Button(fmt.Sprintf("😴 Отложить на %d мин", snoozeMinutes), fmt.Sprintf("alarm_snooze:%s", alarmID)))
	}
	return NewBuilder().Row(row...).Build()
}

// AlarmControls кнопки управления напоминанием в списке
func AlarmControls(alarm model.Alarm) []models.InlineKeyboardButton {
	toggleText := fmt.Sprintf("⏸ %s", alarm.Time)
	if !alarm.Enabled {
		toggleText = fmt.Sprintf("▶️ %s", alarm.Time)
	}
	return []models.InlineKeyboardButton{
		Button(toggleText, fmt.Sprintf("alarm_toggle:%s", alarm.ID)),
		Button("🗑", fmt.Sprintf("alarm_delete:%s", alarm.ID)),
	}
}

// DraftButton кнопка принятия предложенного напоминания
func DraftButton(index int, draft model.AlarmDraft) models.InlineKeyboardButton {
	return Button(
		fmt.Sprintf("➕ %s %s", draft.Alarm.Time, draft.Alarm.Title),
		fmt.Sprintf("draft_accept:%d", index),
	)
}

// WeekdayPicker выбор дней недели при создании напоминания
func WeekdayPicker(selected []time.Weekday) *models.InlineKeyboardMarkup {
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

	buttons := make([]models.InlineKeyboardButton, 0, len(order))
	for _, d := range order {
		text := formatting.GetWeekdayShort(d)
		if slices.Contains(selected, d) {
			text = "✅ " + text
		}
		buttons = append(buttons, Button(text, fmt.Sprintf("day_toggle:%d", int(d))))
	}

	return NewBuilder().
		Grid(4, buttons...).
		Row(
			Button("📅 Будни", "days_preset:weekdays"),
			Button("🔁 Каждый день", "days_preset:all"),
		).
		Row(ConfirmCancelButtons("days_done", "create_cancel")...).
		Build()
}
