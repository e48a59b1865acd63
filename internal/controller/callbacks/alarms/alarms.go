package alarms

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDismiss выключает сработавшее напоминание
func HandleDismiss(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	resolve(ctx, b, callback, h, model.ActionDismiss, "✅ Выключено")
}

// HandleSnooze откладывает сработавшее напоминание
func HandleSnooze(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	resolve(ctx, b, callback, h, model.ActionSnooze, "😴 Отложено")
}

func resolve(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	action model.Action,
	status string,
) {
	common.WithAlarmID(ctx, b, callback, h, func(hc *common.HandlerContext, alarmID string) {
		if !h.Resolver.Resolve(alarmID, action) {
			hc.Answer("Напоминание уже неактуально")
			return
		}

		// Убираем кнопки, чтобы нельзя было ответить повторно
		text := fmt.Sprintf("%s\n\n%s", html.EscapeString(hc.Message.Text), status)
		if err := hc.EditMessage(text, keyboard.NewBuilder().Build()); err != nil {
			h.Logger.Warn("Failed to update alarm message",
				zap.String("alarm_id", alarmID),
				zap.Error(err))
		}

		common.LogAndAnswer(hc, "Alarm answered", status)
	})
}

// HandleToggle включает или выключает напоминание из списка
func HandleToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAlarmID(ctx, b, callback, h, func(hc *common.HandlerContext, alarmID string) {
		enabled, err := h.AlarmService.Toggle(hc.Ctx, hc.UserID, alarmID)
		if err != nil {
			common.HandleError(hc, err, "toggle alarm")
			return
		}

		common.ShowAlarmsPage(hc, 0)

		answer := "⏸ Напоминание выключено"
		if enabled {
			answer = "▶️ Напоминание включено"
		}
		hc.Answer(answer)
	})
}

// HandleDelete спрашивает подтверждение удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAlarmID(ctx, b, callback, h, func(hc *common.HandlerContext, alarmID string) {
		alarm, err := h.AlarmService.Get(hc.Ctx, hc.UserID, alarmID)
		if err != nil {
			common.HandleError(hc, err, "get alarm")
			return
		}

		text := fmt.Sprintf("🗑 <b>Удалить напоминание?</b>\n\n%s", common.FormatAlarm(alarm))
		kb := keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelButtons(
				fmt.Sprintf("alarm_delete_confirm:%s", alarmID),
				"back_to_alarms",
			)...).
			Build()

		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "show delete confirmation")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmDelete удаляет напоминание
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAlarmID(ctx, b, callback, h, func(hc *common.HandlerContext, alarmID string) {
		if err := h.AlarmService.Delete(hc.Ctx, hc.UserID, alarmID); err != nil {
			common.HandleError(hc, err, "delete alarm")
			return
		}

		common.ShowAlarmsPage(hc, 0)
		common.LogAndAnswer(hc, "Alarm deleted by user", "🗑 Удалено")
	})
}
