package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/alarms"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Common callbacks
const (
	BackToAlarms = "back_to_alarms"
	AlarmsPage   = "alarms_page:" // alarms_page:1
	Noop         = "noop"
)

// Alarm prompt callbacks
const (
	AlarmDismiss = "alarm_dismiss:" // alarm_dismiss:alarm_id
	AlarmSnooze  = "alarm_snooze:"  // alarm_snooze:alarm_id
)

// Alarm management callbacks
const (
	AlarmToggle        = "alarm_toggle:"         // alarm_toggle:alarm_id
	AlarmDelete        = "alarm_delete:"         // alarm_delete:alarm_id
	AlarmDeleteConfirm = "alarm_delete_confirm:" // alarm_delete_confirm:alarm_id
	DraftAccept        = "draft_accept:"         // draft_accept:index
)

// Alarm creation dialog callbacks
const (
	DayToggle    = "day_toggle:"  // day_toggle:weekday
	DaysPreset   = "days_preset:" // days_preset:weekdays|all
	DaysDone     = "days_done"
	CreateCancel = "create_cancel"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Navigation =====
	case data == BackToAlarms:
		common.HandleBackToAlarms(ctx, b, callback, h)
	case strings.HasPrefix(data, AlarmsPage):
		common.HandleAlarmsPage(ctx, b, callback, h)
	case data == Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Alarm prompt =====
	case strings.HasPrefix(data, AlarmDismiss):
		alarms.HandleDismiss(ctx, b, callback, h)
	case strings.HasPrefix(data, AlarmSnooze):
		alarms.HandleSnooze(ctx, b, callback, h)

	// ===== Alarm management =====
	case strings.HasPrefix(data, AlarmToggle):
		alarms.HandleToggle(ctx, b, callback, h)
	// alarm_delete_confirm: проверяется раньше alarm_delete:
	case strings.HasPrefix(data, AlarmDeleteConfirm):
		alarms.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, AlarmDelete):
		alarms.HandleDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, DraftAccept):
		alarms.HandleDraftAccept(ctx, b, callback, h)

	// ===== Alarm creation =====
	case strings.HasPrefix(data, DayToggle):
		alarms.HandleDayToggle(ctx, b, callback, h)
	case strings.HasPrefix(data, DaysPreset):
		alarms.HandleDaysPreset(ctx, b, callback, h)
	case data == DaysDone:
		alarms.HandleDaysDone(ctx, b, callback, h)
	case data == CreateCancel:
		alarms.HandleCreateCancel(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
