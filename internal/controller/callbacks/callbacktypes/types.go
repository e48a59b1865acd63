package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(chatID int64)
	GetState(chatID int64) UserState
	SetState(chatID int64, state UserState)
	SetData(chatID int64, key string, value interface{})
	GetData(chatID int64, key string) (interface{}, bool)
	IsMuted(chatID int64) bool
}

// ActionResolver передаёт ответ на уведомление в движок напоминаний
type ActionResolver interface {
	Resolve(alarmID string, action model.Action) bool
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AlarmService *service.AlarmService
	Resolver     ActionResolver
	StateManager StateManager
	Logger       *zap.Logger

	// Функции-хэндлеры из основного контроллера
	HandleAlarms func(ctx context.Context, b *bot.Bot, update *models.Update)
}
