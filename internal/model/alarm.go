package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// AlarmType назначение напоминания (на поведение движка не влияет)
type AlarmType string

const (
	AlarmTypeStudy    AlarmType = "study"
	AlarmTypeBreak    AlarmType = "break"
	AlarmTypeExam     AlarmType = "exam"
	AlarmTypeReminder AlarmType = "reminder"
	AlarmTypeFocus    AlarmType = "focus"
)

// Valid проверяет что тип известен
func (t AlarmType) Valid() bool {
	switch t {
	case AlarmTypeStudy, AlarmTypeBreak, AlarmTypeExam, AlarmTypeReminder, AlarmTypeFocus:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid проверяет что приоритет известен
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TimeOfDay время суток с точностью до минуты (минуты от полуночи)
type TimeOfDay int

const minutesPerDay = 24 * 60

// MaxSnoozeInterval наибольший интервал откладывания в минутах
const MaxSnoozeInterval = minutesPerDay - 1

// NewTimeOfDay создаёт TimeOfDay из часов и минут
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf возвращает минуту суток для момента времени (в его локации)
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay разбирает строку формата "HH:MM"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDayOf(t), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid проверяет что значение - допустимая минута суток
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Alarm напоминание пользователя
type Alarm struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Time           TimeOfDay      `json:"time"`
	Days           []time.Weekday `json:"days"` // пустой список = одноразовое напоминание
	Type           AlarmType      `json:"type"`
	Sound          string         `json:"sound"`
	Volume         int            `json:"volume"` // 0-100
	Enabled        bool           `json:"enabled"`
	SnoozeEnabled  bool           `json:"snoozeEnabled"`
	SnoozeInterval int            `json:"snoozeInterval"` // в минутах
	Vibrate        bool           `json:"vibrate"`
	ExamID         *string        `json:"examId,omitempty"`
	Priority       Priority       `json:"priority"`
	Snoozed        bool           `json:"snoozed,omitempty"` // отложенная копия другого напоминания
	CreatedAt      time.Time      `json:"createdAt"`
	LastTriggered  *time.Time     `json:"lastTriggered,omitempty"`
}

// IsOneTime одноразовое ли напоминание
func (a *Alarm) IsOneTime() bool {
	return len(a.Days) == 0
}

// ActiveOn проверяет активность напоминания в указанный день недели
func (a *Alarm) ActiveOn(day time.Weekday) bool {
	return a.IsOneTime() || slices.Contains(a.Days, day)
}

// CanSnooze можно ли отложить напоминание. Интервал короче суток,
// иначе копия попадает на текущую минуту суток и срабатывает сразу.
func (a *Alarm) CanSnooze() bool {
	return a.SnoozeEnabled && a.SnoozeInterval > 0 && a.SnoozeInterval <= MaxSnoozeInterval
}

// DisplayTitle заголовок для показа пользователю
func (a *Alarm) DisplayTitle() string {
	if a.Snoozed {
		return a.Title + " (отложено)"
	}
	return a.Title
}

// Clone возвращает глубокую копию
func (a Alarm) Clone() Alarm {
	c := a
	if a.Days != nil {
		c.Days = slices.Clone(a.Days)
	}
	if a.ExamID != nil {
		examID := *a.ExamID
		c.ExamID = &examID
	}
	if a.LastTriggered != nil {
		at := *a.LastTriggered
		c.LastTriggered = &at
	}
	return c
}

// Validate проверяет инварианты напоминания
func (a *Alarm) Validate() error {
	vErr := &ValidationError{}

	if strings.TrimSpace(a.UserID) == "" {
		vErr.add("userId", "is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		vErr.add("title", "is required")
	}
	if !a.Time.Valid() {
		vErr.add("time", "must be a minute of day")
	}
	for _, d := range a.Days {
		if d < time.Sunday || d > time.Saturday {
			vErr.add("days", "must contain weekday indices 0-6")
			break
		}
	}
	if !a.Type.Valid() {
		vErr.add("type", fmt.Sprintf("unknown alarm type %q", a.Type))
	}
	if !a.Priority.Valid() {
		vErr.add("priority", fmt.Sprintf("unknown priority %q", a.Priority))
	}
	if a.Volume < 0 || a.Volume > 100 {
		vErr.add("volume", "must be between 0 and 100")
	}
	if a.SnoozeEnabled && (a.SnoozeInterval <= 0 || a.SnoozeInterval > MaxSnoozeInterval) {
		vErr.add("snoozeInterval", fmt.Sprintf("must be between 1 and %d minutes when snooze is enabled", MaxSnoozeInterval))
	}

	if len(vErr.Fields) > 0 {
		return vErr
	}
	return nil
}

// AlarmPatch частичное обновление напоминания (nil = не менять)
type AlarmPatch struct {
	Title          *string
	Description    *string
	Time           *TimeOfDay
	Days           *[]time.Weekday
	Type           *AlarmType
	Sound          *string
	Volume         *int
	Enabled        *bool
	SnoozeEnabled  *bool
	SnoozeInterval *int
	Vibrate        *bool
	ExamID         **string
	Priority       *Priority
}

// Apply применяет изменения к копии напоминания
func (p AlarmPatch) Apply(a Alarm) Alarm {
	out := a.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Time != nil {
		out.Time = *p.Time
	}
	if p.Days != nil {
		out.Days = slices.Clone(*p.Days)
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Sound != nil {
		out.Sound = *p.Sound
	}
	if p.Volume != nil {
		out.Volume = *p.Volume
	}
	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	if p.SnoozeEnabled != nil {
		out.SnoozeEnabled = *p.SnoozeEnabled
	}
	if p.SnoozeInterval != nil {
		out.SnoozeInterval = *p.SnoozeInterval
	}
	if p.Vibrate != nil {
		out.Vibrate = *p.Vibrate
	}
	if p.ExamID != nil {
		out.ExamID = *p.ExamID
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	return out
}
