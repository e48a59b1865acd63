package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
)

// AlarmStore хранилище напоминаний (PostgreSQL или JSON-файл)
type AlarmStore interface {
	Create(ctx context.Context, alarm model.Alarm) (string, error)
	Update(ctx context.Context, id string, patch model.AlarmPatch) (bool, error)
	// Toggle атомарно меняет enabled на противоположный и возвращает новое значение
	Toggle(ctx context.Context, id string) (enabled bool, found bool, err error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, userID string) ([]model.Alarm, error)
	ListAll(ctx context.Context) ([]model.Alarm, error)
	RecordTrigger(ctx context.Context, id string, at time.Time, retire bool) (bool, error)
}
