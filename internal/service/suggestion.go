package service

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/formatting"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
)

const (
	suggestionHorizon = 30 * 24 * time.Hour
	day               = 24 * time.Hour
)

// examLead ступень напоминания перед экзаменом
type examLead struct {
	lead     time.Duration
	priority model.Priority
	sound    string
}

// от ближней к дальней
var examLeads = []examLead{
	{lead: 1 * day, priority: model.PriorityUrgent, sound: "urgent-alert"},
	{lead: 3 * day, priority: model.PriorityHigh, sound: "focus-bell"},
	{lead: 7 * day, priority: model.PriorityMedium, sound: "gentle-chime"},
}

// Suggest предлагает черновики напоминаний по экзаменам и истории сессий.
// Ничего не сохраняет и не изменяет входные данные.
func Suggest(exams []model.Exam, sessions []model.StudySession, now time.Time) []model.AlarmDraft {
	var drafts []model.AlarmDraft

	for _, exam := range exams {
		if draft, ok := examDraft(exam, now); ok {
			drafts = append(drafts, draft)
		}
	}

	if draft, ok := focusDraft(sessions, now); ok {
		drafts = append(drafts, draft)
	}

	return drafts
}

// examDraft выбирает ступень по оставшемуся времени: до 1 дня - срочно,
// до 3 дней - высокий приоритет, дальше - обычное напоминание за неделю
func examDraft(exam model.Exam, now time.Time) (model.AlarmDraft, bool) {
	deadline := exam.Deadline.In(now.Location())
	remaining := deadline.Sub(now)
	if remaining <= 0 || remaining > suggestionHorizon {
		return model.AlarmDraft{}, false
	}

	step := examLeads[len(examLeads)-1]
	for _, l := range examLeads {
		if remaining <= l.lead {
			step = l
			break
		}
	}

	// Прошедшая ступень срабатывает в ближайшую следующую минуту
	fireAt := deadline.Add(-step.lead).Truncate(time.Minute)
	if !fireAt.After(now) {
		fireAt = now.Truncate(time.Minute).Add(time.Minute)
	}
	if !fireAt.Before(deadline) {
		return model.AlarmDraft{}, false
	}

	examID := exam.ID
	daysLeft := int((remaining + day - 1) / day)

	return model.AlarmDraft{
		Alarm: model.Alarm{
			UserID:         exam.UserID,
			Title:          fmt.Sprintf("Экзамен: %s", exam.Title),
			Description:    fmt.Sprintf("До экзамена %s", formatting.Days(daysLeft)),
			Time:           model.TimeOfDayOf(fireAt),
			Type:           model.AlarmTypeExam,
			Sound:          step.sound,
			Volume:         80,
			Enabled:        true,
			SnoozeEnabled:  true,
			SnoozeInterval: 10,
			Vibrate:        true,
			ExamID:         &examID,
			Priority:       step.priority,
		},
		Date:   dateOf(fireAt),
		FireAt: fireAt,
		Reason: fmt.Sprintf("Напоминание за %s до экзамена", formatting.Days(int(step.lead/day))),
	}, true
}

// focusDraft предлагает будничное время фокуса в самый частый час сессий
func focusDraft(sessions []model.StudySession, now time.Time) (model.AlarmDraft, bool) {
	if len(sessions) == 0 {
		return model.AlarmDraft{}, false
	}

	var counts [24]int
	for _, s := range sessions {
		counts[s.StartedAt.Hour()]++
	}

	best := 0
	for hour := 1; hour < len(counts); hour++ {
		if counts[hour] > counts[best] {
			best = hour
		}
	}

	return model.AlarmDraft{
		Alarm: model.Alarm{
			UserID:         sessions[0].UserID,
			Title:          "Время фокуса",
			Description:    "В это время вы чаще всего занимаетесь",
			Time:           model.NewTimeOfDay(best, 0),
			Days:           []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			Type:           model.AlarmTypeFocus,
			Sound:          "focus-bell",
			Volume:         60,
			Enabled:        true,
			SnoozeEnabled:  true,
			SnoozeInterval: 5,
			Priority:       model.PriorityMedium,
		},
		Date:   dateOf(now),
		Reason: fmt.Sprintf("Большинство сессий начинается в %02d:00", best),
	}, true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
