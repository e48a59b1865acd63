package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"
)

// StudySource данные экзаменов и сессий внешнего модуля
type StudySource interface {
	Exams(ctx context.Context, userID string, from time.Time) ([]model.Exam, error)
	Sessions(ctx context.Context, userID string) ([]model.StudySession, error)
}

// AlarmService обработчики действий пользователя над напоминаниями
type AlarmService struct {
	store  AlarmStore
	study  StudySource
	clk    clock.Clock
	logger *zap.Logger
}

// NewAlarmService создаёт сервис; study может быть nil, тогда предложения недоступны
func NewAlarmService(store AlarmStore, study StudySource, clk clock.Clock, logger *zap.Logger) *AlarmService {
	return &AlarmService{
		store:  store,
		study:  study,
		clk:    clk,
		logger: logger,
	}
}

// Create создаёт напоминание
func (s *AlarmService) Create(ctx context.Context, alarm model.Alarm) (string, error) {
	alarm.ID = ""
	alarm.CreatedAt = s.clk.Now()
	alarm.LastTriggered = nil
	alarm.Snoozed = false

	id, err := s.store.Create(ctx, alarm)
	if err != nil {
		return "", fmt.Errorf("create alarm: %w", err)
	}

	s.logger.Info("Alarm created",
		zap.String("alarm_id", id),
		zap.String("user_id", alarm.UserID),
		zap.String("time", alarm.Time.String()))

	return id, nil
}

// List получает напоминания пользователя
func (s *AlarmService) List(ctx context.Context, userID string) ([]model.Alarm, error) {
	return s.store.List(ctx, userID)
}

// Get получает напоминание пользователя по ID
func (s *AlarmService) Get(ctx context.Context, userID, alarmID string) (model.Alarm, error) {
	alarms, err := s.store.List(ctx, userID)
	if err != nil {
		return model.Alarm{}, fmt.Errorf("get alarm: %w", err)
	}
	for _, a := range alarms {
		if a.ID == alarmID {
			return a, nil
		}
	}
	return model.Alarm{}, model.ErrAlarmNotFound
}

// Update применяет частичное изменение
func (s *AlarmService) Update(ctx context.Context, alarmID string, patch model.AlarmPatch) error {
	ok, err := s.store.Update(ctx, alarmID, patch)
	if err != nil {
		return fmt.Errorf("update alarm: %w", err)
	}
	if !ok {
		return model.ErrAlarmNotFound
	}
	return nil
}

// Toggle включает или выключает напоминание и возвращает новое состояние
func (s *AlarmService) Toggle(ctx context.Context, userID, alarmID string) (bool, error) {
	if _, err := s.Get(ctx, userID, alarmID); err != nil {
		return false, err
	}

	enabled, ok, err := s.store.Toggle(ctx, alarmID)
	if err != nil {
		return false, fmt.Errorf("toggle alarm: %w", err)
	}
	if !ok {
		return false, model.ErrAlarmNotFound
	}

	s.logger.Info("Alarm toggled",
		zap.String("alarm_id", alarmID),
		zap.Bool("enabled", enabled))

	return enabled, nil
}

// Delete удаляет напоминание пользователя
func (s *AlarmService) Delete(ctx context.Context, userID, alarmID string) error {
	if _, err := s.Get(ctx, userID, alarmID); err != nil {
		return err
	}

	ok, err := s.store.Delete(ctx, alarmID)
	if err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	if !ok {
		return model.ErrAlarmNotFound
	}

	s.logger.Info("Alarm deleted", zap.String("alarm_id", alarmID))
	return nil
}

// Suggestions строит черновики по экзаменам и истории сессий пользователя
func (s *AlarmService) Suggestions(ctx context.Context, userID string) ([]model.AlarmDraft, error) {
	if s.study == nil {
		return nil, nil
	}

	now := s.clk.Now()
	exams, err := s.study.Exams(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("load exams: %w", err)
	}
	sessions, err := s.study.Sessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load study sessions: %w", err)
	}

	return Suggest(exams, sessions, now), nil
}

// AcceptDraft превращает принятый черновик в обычное напоминание.
// Одноразовое напоминание срабатывает в ближайшее совпадение минуты суток,
// поэтому черновик с FireAt принимается только если до него меньше суток.
func (s *AlarmService) AcceptDraft(ctx context.Context, userID string, draft model.AlarmDraft) (string, error) {
	alarm := draft.Alarm.Clone()
	alarm.UserID = userID

	if !draft.FireAt.IsZero() {
		now := s.clk.Now()
		fireAt := draft.FireAt.In(now.Location())
		if !fireAt.After(now) {
			return "", fmt.Errorf("accept draft for %s: %w", fireAt.Format(time.RFC3339), model.ErrDraftExpired)
		}
		if !fireAt.Before(now.Truncate(time.Minute).Add(day)) {
			return "", fmt.Errorf("accept draft for %s: %w", fireAt.Format(time.RFC3339), model.ErrDraftTooEarly)
		}
		alarm.Time = model.TimeOfDayOf(fireAt)
		alarm.Days = nil
	}

	return s.Create(ctx, alarm)
}
