package alarms

import (
	"context"
	"fmt"
	"html"
	"slices"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/formatting"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var (
	weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	allDays  = []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
)

// HandleDayToggle отмечает или снимает день недели
func HandleDayToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDaysStep(ctx, b, callback, h, func(hc *common.HandlerContext, days []time.Weekday) {
		idx, err := common.ParseIndexFromCallback(callback.Data)
		if err != nil || idx > int(time.Saturday) {
			common.HandleError(hc, common.ErrInvalidFormat, "parse weekday")
			return
		}

		updateDays(hc, ToggleDay(days, time.Weekday(idx)))
	})
}

// HandleDaysPreset выбирает будни или все дни
func HandleDaysPreset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDaysStep(ctx, b, callback, h, func(hc *common.HandlerContext, _ []time.Weekday) {
		preset := weekdays
		if callback.Data == "days_preset:all" {
			preset = allDays
		}
		updateDays(hc, slices.Clone(preset))
	})
}

// HandleDaysDone сохраняет напоминание из ответов диалога
func HandleDaysDone(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDaysStep(ctx, b, callback, h, func(hc *common.HandlerContext, days []time.Weekday) {
		rawTime, _ := hc.GetData(state.KeyAlarmTime)
		rawTitle, _ := hc.GetData(state.KeyAlarmTitle)
		at, okTime := rawTime.(model.TimeOfDay)
		title, okTitle := rawTitle.(string)
		if !okTime || !okTitle {
			hc.ClearState()
			hc.AnswerAlert("❌ Диалог устарел, начните заново: /new")
			return
		}

		alarm := common.NewDialogAlarm(hc.UserID, title, at, days)
		id, err := h.AlarmService.Create(hc.Ctx, alarm)
		if err != nil {
			common.HandleError(hc, err, "create alarm")
			return
		}
		hc.ClearState()

		text := fmt.Sprintf("✅ <b>Напоминание создано</b>\n\n%s", common.FormatAlarm(alarm))
		kb := keyboard.NewBuilder().Row(keyboard.BackToAlarmsButton()).Build()
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Warn("Failed to show created alarm", zap.String("alarm_id", id), zap.Error(err))
		}
		hc.Answer("Готово")
	})
}

// HandleCreateCancel прерывает диалог создания
func HandleCreateCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		if err := hc.EditMessage("❌ Создание напоминания отменено", nil); err != nil {
			h.Logger.Warn("Failed to edit cancelled dialog", zap.Error(err))
		}
		hc.Answer("")
	})
}

// ToggleDay возвращает новый набор дней с переключённым day
func ToggleDay(days []time.Weekday, day time.Weekday) []time.Weekday {
	if i := slices.Index(days, day); i >= 0 {
		return slices.Delete(slices.Clone(days), i, i+1)
	}
	out := append(slices.Clone(days), day)
	slices.Sort(out)
	return out
}

// DaysPrompt текст шага выбора дней
func DaysPrompt(title string, at model.TimeOfDay, days []time.Weekday) string {
	return fmt.Sprintf(
		"📝 Новое напоминание\n\n"+
			"⏰ %s <b>%s</b>\n"+
			"🗓 %s\n\n"+
			"Шаг 3 из 3: выберите дни повтора.\n"+
			"Без выбранных дней напоминание сработает один раз.",
		at, html.EscapeString(title), formatting.FormatWeekdays(days),
	)
}

func withDaysStep(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext, []time.Weekday),
) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if h.StateManager.GetState(hc.ChatID) != callbacktypes.UserState(state.StateCreateAlarmDays) {
			hc.AnswerAlert("❌ Диалог устарел, начните заново: /new")
			return
		}

		raw, _ := hc.GetData(state.KeyAlarmDays)
		days, _ := raw.([]time.Weekday)
		handler(hc, days)
	})
}

func updateDays(hc *common.HandlerContext, days []time.Weekday) {
	hc.SetData(state.KeyAlarmDays, days)

	rawTime, _ := hc.GetData(state.KeyAlarmTime)
	rawTitle, _ := hc.GetData(state.KeyAlarmTitle)
	at, _ := rawTime.(model.TimeOfDay)
	title, _ := rawTitle.(string)

	if err := hc.EditMessage(DaysPrompt(title, at, days), keyboard.WeekdayPicker(days)); err != nil {
		hc.Handler.Logger.Warn("Failed to update weekday picker", zap.Error(err))
	}
	hc.Answer("")
}
