package formatting

import "github.com/Freeeeeet/study_alarm_bot/internal/model"

// PriorityDisplay отображение приоритета напоминания
type PriorityDisplay struct {
	Emoji string
	Text  string
}

// GetPriorityDisplay возвращает emoji и текст для приоритета
func GetPriorityDisplay(priority model.Priority) PriorityDisplay {
	displays := map[model.Priority]PriorityDisplay{
		model.PriorityLow:    {"⚪️", "Низкий"},
		model.PriorityMedium: {"🔵", "Средний"},
		model.PriorityHigh:   {"🟠", "Высокий"},
		model.PriorityUrgent: {"🔴", "Срочно"},
	}

	if display, ok := displays[priority]; ok {
		return display
	}

	return PriorityDisplay{"❓", "Неизвестно"}
}

// GetTypeEmoji возвращает emoji для типа напоминания
func GetTypeEmoji(t model.AlarmType) string {
	switch t {
	case model.AlarmTypeStudy:
		return "📚"
	case model.AlarmTypeBreak:
		return "☕️"
	case model.AlarmTypeExam:
		return "📝"
	case model.AlarmTypeFocus:
		return "🎯"
	default:
		return "⏰"
	}
}

// EnabledEmoji статус включённости
func EnabledEmoji(enabled bool) string {
	if enabled {
		return "🟢"
	}
	return "⚫️"
}
