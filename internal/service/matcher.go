package service

import (
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
)

// DedupWindow минимальный интервал между срабатываниями одного напоминания
const DedupWindow = time.Minute

// IsDue проверяет, должно ли напоминание сработать в момент now
func IsDue(alarm model.Alarm, now time.Time) bool {
	if !alarm.Enabled {
		return false
	}
	if alarm.Time != model.TimeOfDayOf(now) {
		return false
	}
	// Защита от повторного срабатывания на каждом тике в ту же минуту
	if alarm.LastTriggered != nil && now.Sub(*alarm.LastTriggered) < DedupWindow {
		return false
	}
	return alarm.ActiveOn(now.Weekday())
}

// DueAlarms отбирает сработавшие напоминания, сохраняя исходный порядок
func DueAlarms(alarms []model.Alarm, now time.Time) []model.Alarm {
	var due []model.Alarm
	for _, a := range alarms {
		if IsDue(a, now) {
			due = append(due, a)
		}
	}
	return due
}
