package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/study_alarm_bot/internal/formatting"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// FormatAlarm строка напоминания в списке
func FormatAlarm(alarm model.Alarm) string {
	priority := formatting.GetPriorityDisplay(alarm.Priority)

	line := fmt.Sprintf("%s %s <b>%s</b> %s\n    🗓 %s · %s %s",
		formatting.EnabledEmoji(alarm.Enabled),
		formatting.GetTypeEmoji(alarm.Type),
		alarm.Time,
		html.EscapeString(alarm.DisplayTitle()),
		formatting.FormatWeekdays(alarm.Days),
		priority.Emoji,
		priority.Text,
	)
	if alarm.SnoozeEnabled {
		line += fmt.Sprintf(" · 😴 %s", formatting.FormatMinutes(alarm.SnoozeInterval))
	}
	return line
}

// BuildAlarmsScreen формирует экран списка напоминаний
func BuildAlarmsScreen(alarms []model.Alarm, page int) (string, *models.InlineKeyboardMarkup) {
	if len(alarms) == 0 {
		text := "⏰ <b>Напоминания</b>\n\n" +
			"У вас пока нет напоминаний.\n\n" +
			"Создать: /new\n" +
			"Предложения по экзаменам: /suggest"
		return text, nil
	}

	start, end, page := keyboard.PageBounds(len(alarms), keyboard.AlarmsPerPage, page)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⏰ <b>Напоминания</b> (%d %s)\n\n", len(alarms), formatting.PluralizeAlarms(len(alarms))))

	kb := keyboard.NewBuilder()
	for _, a := range alarms[start:end] {
		sb.WriteString(FormatAlarm(a))
		sb.WriteString("\n\n")
		kb.Row(keyboard.AlarmControls(a)...)
	}
	sb.WriteString("⏸/▶️ - выключить или включить, 🗑 - удалить")

	kb.AddPagination("alarms_page:", page, keyboard.TotalPages(len(alarms), keyboard.AlarmsPerPage))

	return sb.String(), kb.Build()
}

// BuildDraftsScreen формирует экран предложенных напоминаний
func BuildDraftsScreen(drafts []model.AlarmDraft) (string, *models.InlineKeyboardMarkup) {
	if len(drafts) == 0 {
		return "💡 Пока нечего предложить: нет ближайших экзаменов и истории занятий.", nil
	}

	var sb strings.Builder
	sb.WriteString("💡 <b>Предложения</b>\n\n")

	kb := keyboard.NewBuilder()
	for i, d := range drafts {
		priority := formatting.GetPriorityDisplay(d.Alarm.Priority)
		sb.WriteString(fmt.Sprintf("%d. %s <b>%s</b> %s\n    %s · %s\n    %s\n\n",
			i+1,
			priority.Emoji,
			d.Alarm.Time,
			html.EscapeString(d.Alarm.Title),
			formatting.FormatDate(d.Date),
			formatting.FormatWeekdays(d.Alarm.Days),
			html.EscapeString(d.Reason),
		))
		kb.Row(keyboard.DraftButton(i, d))
	}
	sb.WriteString("Нажмите на предложение, чтобы добавить его.")

	return sb.String(), kb.Build()
}

// BuildPromptText текст уведомления о сработавшем напоминании
func BuildPromptText(n service.Notification) string {
	priority := formatting.GetPriorityDisplay(n.Priority)

	text := fmt.Sprintf("⏰ <b>%s</b> · %s\n%s %s",
		html.EscapeString(n.Title),
		n.Time,
		priority.Emoji,
		priority.Text,
	)
	if n.Body != "" {
		text += "\n\n" + html.EscapeString(n.Body)
	}
	return text
}
