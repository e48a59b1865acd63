package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/alarms"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNewAlarmStart начинает создание напоминания
func (h *Handlers) HandleNewAlarmStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.ClearState(chatID)
	h.stateManager.SetState(chatID, state.StateCreateAlarmTime)

	h.logger.Info("Starting alarm creation", zap.Int64("chat_id", chatID))

	h.sendMessage(ctx, b, chatID,
		"📝 Новое напоминание\n\n"+
			"Шаг 1 из 3: во сколько напомнить? Формат ЧЧ:ММ, например 08:30\n\n"+
			"Для отмены используйте /cancel", nil)
}

// handleTimeStep обрабатывает ввод времени
func (h *Handlers) handleTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	at, err := model.ParseTimeOfDay(strings.TrimSpace(update.Message.Text))
	if err != nil {
		h.logger.Debug("Invalid time input", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не понял время. Введите в формате ЧЧ:ММ, например 08:30")
		return
	}

	h.stateManager.SetData(chatID, state.KeyAlarmTime, at)
	h.stateManager.SetState(chatID, state.StateCreateAlarmTitle)

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("⏰ %s\n\nШаг 2 из 3: как назвать напоминание?\n\nНапример: Пара по матанализу", at), nil)
}

// handleTitleStep обрабатывает ввод названия
func (h *Handlers) handleTitleStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	title, err := ValidateTitle(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, titleErrorMessage(err))
		return
	}

	raw, _ := h.stateManager.GetData(chatID, state.KeyAlarmTime)
	at, _ := raw.(model.TimeOfDay)

	h.stateManager.SetData(chatID, state.KeyAlarmTitle, title)
	h.stateManager.SetData(chatID, state.KeyAlarmDays, []time.Weekday(nil))
	h.stateManager.SetState(chatID, state.StateCreateAlarmDays)

	h.sendMessage(ctx, b, chatID, alarms.DaysPrompt(title, at, nil), keyboard.WeekdayPicker(nil))
}

var (
	errTitleTooShort = errors.New("title too short")
	errTitleTooLong  = errors.New("title too long")
)

// ValidateTitle проверяет длину названия напоминания
func ValidateTitle(text string) (string, error) {
	title := strings.TrimSpace(text)
	n := utf8.RuneCountInString(title)

	if n < AlarmTitleMinLength {
		return "", errTitleTooShort
	}
	if n > AlarmTitleMaxLength {
		return "", errTitleTooLong
	}
	return title, nil
}

func titleErrorMessage(err error) string {
	if errors.Is(err, errTitleTooLong) {
		return fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", AlarmTitleMaxLength)
	}
	return fmt.Sprintf("❌ Название слишком короткое. Минимум %d символа.\n\nПопробуйте ещё раз:", AlarmTitleMinLength)
}
