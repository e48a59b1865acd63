package common

import (
	"context"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBackToAlarms возвращает к первой странице списка напоминаний
func HandleBackToAlarms(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		ShowAlarmsPage(hc, 0)
		hc.Answer("")
	})
}

// HandleAlarmsPage переключает страницу списка напоминаний
func HandleAlarmsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		page, err := ParseIndexFromCallback(callback.Data)
		if err != nil {
			HandleError(hc, err, "parse alarms page")
			return
		}
		ShowAlarmsPage(hc, page)
		hc.Answer("")
	})
}

// ShowAlarmsPage перерисовывает сообщение списком напоминаний
func ShowAlarmsPage(hc *HandlerContext, page int) {
	alarms, err := hc.Handler.AlarmService.List(hc.Ctx, hc.UserID)
	if err != nil {
		HandleError(hc, err, "list alarms")
		return
	}

	text, kb := BuildAlarmsScreen(alarms, page)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to edit alarms screen",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
	}
}
