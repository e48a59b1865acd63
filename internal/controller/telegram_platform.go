package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// messenger подмножество *bot.Bot, нужное для уведомлений
type messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

type muteChecker interface {
	IsMuted(chatID int64) bool
}

// TelegramPlatform показывает уведомления сообщениями в чате пользователя.
// userID напоминания - это ID чата.
type TelegramPlatform struct {
	messenger messenger
	mutes     muteChecker
}

func NewTelegramPlatform(m messenger, mutes muteChecker) *TelegramPlatform {
	return &TelegramPlatform{
		messenger: m,
		mutes:     mutes,
	}
}

// Permitted уведомления разрешены, пока чат не в тихом режиме
func (p *TelegramPlatform) Permitted(_ context.Context, userID string) bool {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return false
	}
	return !p.mutes.IsMuted(chatID)
}

// Present отправляет сообщение с кнопками и возвращает ID сообщения
func (p *TelegramPlatform) Present(ctx context.Context, n service.Notification) (string, error) {
	chatID, err := strconv.ParseInt(n.UserID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse chat id %q: %w", n.UserID, err)
	}

	msg, err := p.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:              chatID,
		Text:                common.BuildPromptText(n),
		ParseMode:           models.ParseModeHTML,
		DisableNotification: n.Priority == model.PriorityLow,
		ReplyMarkup:         keyboard.AlarmPrompt(n.AlarmID, n.Actions, n.SnoozeMinutes),
	})
	if err != nil {
		return "", fmt.Errorf("send alarm message: %w", err)
	}

	return strconv.Itoa(msg.ID), nil
}

// Withdraw удаляет сообщение уведомления
func (p *TelegramPlatform) Withdraw(ctx context.Context, userID, ref string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id %q: %w", userID, err)
	}
	messageID, err := strconv.Atoi(ref)
	if err != nil {
		return fmt.Errorf("parse message id %q: %w", ref, err)
	}

	if _, err := p.messenger.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		return fmt.Errorf("delete alarm message: %w", err)
	}
	return nil
}
