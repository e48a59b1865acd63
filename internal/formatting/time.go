package formatting

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatMinutes форматирует длительность в минутах
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// FormatWeekdays форматирует дни повтора; пустой список - одноразовое
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "однократно"
	}
	if len(days) == 7 {
		return "ежедневно"
	}

	// Порядок с понедельника
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}

	names := make([]string, 0, len(days))
	for _, d := range order {
		if set[d] {
			names = append(names, GetWeekdayShort(d))
		}
	}
	return strings.Join(names, ", ")
}
