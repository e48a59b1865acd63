package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"
)

type playbackStopper interface {
	Stop()
}

// SnoozeManager откладывает напоминание, создавая одноразовую копию
type SnoozeManager struct {
	store    AlarmStore
	playback playbackStopper
	clk      clock.Clock
	logger   *zap.Logger
}

func NewSnoozeManager(store AlarmStore, playback playbackStopper, clk clock.Clock, logger *zap.Logger) *SnoozeManager {
	return &SnoozeManager{
		store:    store,
		playback: playback,
		clk:      clk,
		logger:   logger,
	}
}

// Snooze останавливает звук и сохраняет новую одноразовую копию напоминания
// на now + snoozeInterval. Исходное напоминание не изменяется.
func (m *SnoozeManager) Snooze(ctx context.Context, alarm model.Alarm) (model.Alarm, error) {
	m.playback.Stop()

	if !alarm.SnoozeEnabled || alarm.SnoozeInterval <= 0 {
		return model.Alarm{}, model.ErrSnoozeDisabled
	}
	if !alarm.CanSnooze() {
		return model.Alarm{}, fmt.Errorf("snooze for %d minutes: %w", alarm.SnoozeInterval, model.ErrSnoozeTooLong)
	}

	now := m.clk.Now()
	fireAt := now.Add(time.Duration(alarm.SnoozeInterval) * time.Minute)

	snoozed := alarm.Clone()
	snoozed.ID = ""
	snoozed.CreatedAt = now
	snoozed.Time = model.TimeOfDayOf(fireAt)
	snoozed.Days = nil
	snoozed.Enabled = true
	snoozed.Snoozed = true
	snoozed.LastTriggered = nil

	id, err := m.store.Create(ctx, snoozed)
	if err != nil {
		return model.Alarm{}, fmt.Errorf("create snoozed alarm: %w", err)
	}
	snoozed.ID = id

	m.logger.Info("Alarm snoozed",
		zap.String("alarm_id", alarm.ID),
		zap.String("snoozed_id", id),
		zap.String("fire_at", snoozed.Time.String()))

	return snoozed, nil
}
