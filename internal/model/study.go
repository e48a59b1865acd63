package model

import "time"

// Exam экзамен (данные внешнего модуля, только для чтения)
type Exam struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
}

// StudySession завершённая учебная сессия
type StudySession struct {
	UserID          string    `json:"user_id"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

// AlarmDraft предложенное напоминание, не сохраняется без подтверждения
type AlarmDraft struct {
	Alarm  Alarm     `json:"alarm"`
	Date   time.Time `json:"date"` // день, к которому относится предложение
	// FireAt момент срабатывания одноразового черновика; нулевой у повторяющихся
	FireAt time.Time `json:"fire_at,omitempty"`
	Reason string    `json:"reason"`
}
