package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"go.uber.org/zap"
)

// Notification данные системного уведомления
type Notification struct {
	AlarmID            string
	UserID             string
	Title              string
	Body               string
	Time               model.TimeOfDay
	Priority           model.Priority
	RequireInteraction bool
	Actions            []model.Action
	SnoozeMinutes      int
}

// Platform платформа уведомлений
type Platform interface {
	// Permitted разрешены ли уведомления пользователю
	Permitted(ctx context.Context, userID string) bool
	// Present показывает уведомление и возвращает ссылку на него
	Present(ctx context.Context, n Notification) (string, error)
	// Withdraw убирает показанное уведомление
	Withdraw(ctx context.Context, userID, ref string) error
}

// Prompt ожидание ответа пользователя на уведомление
type Prompt struct {
	Actions   <-chan model.Action
	Presented bool // false - уведомление не показано, Actions уже содержит dismiss
}

type pendingPrompt struct {
	actions      chan model.Action
	ref          string
	notification Notification
}

// NotificationDispatcher показывает уведомления и передаёт ответы пользователя движку
type NotificationDispatcher struct {
	mu       sync.Mutex
	platform Platform
	logger   *zap.Logger
	pending  map[string]*pendingPrompt // alarmID -> ожидающее уведомление
}

func NewNotificationDispatcher(platform Platform, logger *zap.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		platform: platform,
		logger:   logger,
		pending:  make(map[string]*pendingPrompt),
	}
}

// Show показывает уведомление о сработавшем напоминании.
// Без разрешения или при ошибке платформы сразу возвращает dismiss.
func (d *NotificationDispatcher) Show(ctx context.Context, alarm model.Alarm) Prompt {
	if !d.platform.Permitted(ctx, alarm.UserID) {
		d.logger.Info("Notifications not permitted, skipping",
			zap.String("alarm_id", alarm.ID),
			zap.String("user_id", alarm.UserID))
		return dismissedPrompt()
	}

	n := buildNotification(alarm)
	ref, err := d.platform.Present(ctx, n)
	if err != nil {
		d.logger.Warn("Failed to present notification",
			zap.String("alarm_id", alarm.ID),
			zap.Error(err))
		return dismissedPrompt()
	}

	p := &pendingPrompt{
		actions:      make(chan model.Action, 1),
		ref:          ref,
		notification: n,
	}

	d.mu.Lock()
	d.pending[alarm.ID] = p
	d.mu.Unlock()

	return Prompt{Actions: p.actions, Presented: true}
}

// Resolve передаёт выбор пользователя; false если уведомление уже неактуально
func (d *NotificationDispatcher) Resolve(alarmID string, action model.Action) bool {
	d.mu.Lock()
	p, ok := d.pending[alarmID]
	if ok {
		delete(d.pending, alarmID)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}

	if action == model.ActionSnooze && !hasAction(p.notification.Actions, model.ActionSnooze) {
		action = model.ActionDismiss
	}
	p.actions <- action
	return true
}

// Close завершает уведомление без ответа пользователя (автоостановка).
// Срочные уведомления остаются на экране до явного действия.
func (d *NotificationDispatcher) Close(ctx context.Context, alarmID string) {
	d.mu.Lock()
	p, ok := d.pending[alarmID]
	if ok {
		delete(d.pending, alarmID)
	}
	d.mu.Unlock()

	if !ok || p.notification.RequireInteraction {
		return
	}

	if err := d.platform.Withdraw(ctx, p.notification.UserID, p.ref); err != nil {
		d.logger.Warn("Failed to withdraw notification",
			zap.String("alarm_id", alarmID),
			zap.Error(err))
	}
}

// Pending есть ли неотвеченное уведомление для напоминания
func (d *NotificationDispatcher) Pending(alarmID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[alarmID]
	return ok
}

func buildNotification(alarm model.Alarm) Notification {
	actions := []model.Action{model.ActionDismiss}
	if alarm.CanSnooze() {
		actions = append(actions, model.ActionSnooze)
	}

	return Notification{
		AlarmID:            alarm.ID,
		UserID:             alarm.UserID,
		Title:              alarm.DisplayTitle(),
		Body:               alarm.Description,
		Time:               alarm.Time,
		Priority:           alarm.Priority,
		RequireInteraction: alarm.Priority == model.PriorityUrgent,
		Actions:            actions,
		SnoozeMinutes:      alarm.SnoozeInterval,
	}
}

func dismissedPrompt() Prompt {
	ch := make(chan model.Action, 1)
	ch <- model.ActionDismiss
	return Prompt{Actions: ch}
}

func hasAction(actions []model.Action, action model.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
