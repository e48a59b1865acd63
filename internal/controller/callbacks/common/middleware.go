package common

import (
	"context"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithMessage создаёт HandlerContext и проверяет что есть исходное сообщение
// При ошибке автоматически отвечает пользователю
func WithMessage(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireMessage(); err != nil {
		h.Logger.Warn("Callback without message",
			zap.Int64("telegram_id", callback.From.ID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithAlarmID дополнительно разбирает ID напоминания из callback data
func WithAlarmID(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext, string),
) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		alarmID, err := ParseIDFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, err, "parse alarm id")
			return
		}
		handler(hc, alarmID)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", hc.ChatID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message,
		zap.Int64("chat_id", hc.ChatID),
		zap.String("data", hc.Callback.Data))
	hc.Answer(answer)
}
