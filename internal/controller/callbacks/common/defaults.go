package common

import (
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
)

// Значения по умолчанию для напоминаний, созданных через диалог
const (
	DefaultVolume         = 70
	DefaultSnoozeInterval = 5
)

// NewDialogAlarm собирает напоминание из ответов пользователя в диалоге
func NewDialogAlarm(userID, title string, at model.TimeOfDay, days []time.Weekday) model.Alarm {
	return model.Alarm{
		UserID:         userID,
		Title:          title,
		Time:           at,
		Days:           days,
		Type:           model.AlarmTypeStudy,
		Sound:          service.DefaultSound,
		Volume:         DefaultVolume,
		Enabled:        true,
		SnoozeEnabled:  true,
		SnoozeInterval: DefaultSnoozeInterval,
		Vibrate:        true,
		Priority:       model.PriorityMedium,
	}
}
