package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/alarms - Мои напоминания\n" +
	"/new - Создать напоминание\n" +
	"/suggest - Предложения по экзаменам и занятиям\n" +
	"/sounds - Доступные звуки\n" +
	"/mute - Тихий режим: не присылать уведомления\n" +
	"/unmute - Снова присылать уведомления\n" +
	"/cancel - Отменить текущее действие\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := ""
	if update.Message.From != nil {
		name = update.Message.From.FirstName
	}

	h.logger.Info("User started bot",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("first_name", name))

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я напомню о занятиях, перерывах и экзаменах. "+
			"Когда напоминание сработает, пришлю сообщение с кнопками "+
			"«Выключить» и «Отложить».\n\n%s",
		html.EscapeString(name),
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleAlarms показывает список напоминаний
func (h *Handlers) HandleAlarms(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	alarms, err := h.alarmService.List(ctx, userID(chatID))
	if err != nil {
		h.logger.Error("Failed to list alarms", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildAlarmsScreen(alarms, 0)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleSuggest показывает предложения по экзаменам и истории занятий
func (h *Handlers) HandleSuggest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	drafts, err := h.alarmService.Suggestions(ctx, userID(chatID))
	if err != nil {
		h.logger.Error("Failed to build suggestions", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	// Черновики живут в состоянии до следующего /suggest или /cancel
	h.stateManager.SetData(chatID, state.KeyDrafts, drafts)

	text, kb := common.BuildDraftsScreen(drafts)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleSounds показывает встроенные звуки
func (h *Handlers) HandleSounds(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("🔔 <b>Звуки</b>\n\n")
	for _, s := range h.catalog.Sounds() {
		sb.WriteString(fmt.Sprintf("• %s <code>%s</code> (%s)\n", s.Name, s.ID, s.NominalDuration))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String(), nil)
}

// HandleMute включает тихий режим
func (h *Handlers) HandleMute(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.SetMuted(chatID, true)
	h.logger.Info("Chat muted", zap.Int64("chat_id", chatID))

	h.sendMessage(ctx, b, chatID,
		"🔕 Тихий режим включён. Напоминания будут срабатывать без сообщений.\n\nВключить снова: /unmute", nil)
}

// HandleUnmute выключает тихий режим
func (h *Handlers) HandleUnmute(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.SetMuted(chatID, false)
	h.logger.Info("Chat unmuted", zap.Int64("chat_id", chatID))

	h.sendMessage(ctx, b, chatID, "🔔 Уведомления снова включены", nil)
}

// HandleCancel отменяет текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "Нечего отменять", nil)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "❌ Действие отменено", nil)
}

// HandleTextMessage обрабатывает текст в рамках активного диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	switch h.stateManager.GetState(update.Message.Chat.ID) {
	case state.StateCreateAlarmTime:
		h.handleTimeStep(ctx, b, update)
	case state.StateCreateAlarmTitle:
		h.handleTitleStep(ctx, b, update)
	case state.StateCreateAlarmDays:
		h.sendError(ctx, b, update.Message.Chat.ID, "Выберите дни кнопками под сообщением выше 👆")
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Не понимаю 🤔 Список команд: /help", nil)
	}
}
