package controller

import (
	"context"

	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/handlers"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// eventSource источник событий движка напоминаний
type eventSource interface {
	Subscribe(buffer int) (<-chan model.Event, func())
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	events          eventSource
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	alarmService *service.AlarmService,
	catalog *service.SoundCatalog,
	resolver callbacktypes.ActionResolver,
	stateManager *state.Manager,
	events eventSource,
	logger *zap.Logger,
) *BotController {
	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		alarmService,
		catalog,
		stateManager,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		alarmService,
		resolver,
		state.NewAdapter(stateManager),
		logger,
		cmdHandlers.HandleAlarms,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		events:          events,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/alarms", bot.MatchTypeExact, c.handlers.HandleAlarms)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/new", bot.MatchTypeExact, c.handlers.HandleNewAlarmStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/suggest", bot.MatchTypeExact, c.handlers.HandleSuggest)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sounds", bot.MatchTypeExact, c.handlers.HandleSounds)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mute", bot.MatchTypeExact, c.handlers.HandleMute)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unmute", bot.MatchTypeExact, c.handlers.HandleUnmute)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "alarms", Description: "⏰ Мои напоминания"},
		{Command: "new", Description: "➕ Создать напоминание"},
		{Command: "suggest", Description: "💡 Предложения по экзаменам"},
		{Command: "sounds", Description: "🔔 Звуки"},
		{Command: "mute", Description: "🔕 Тихий режим"},
		{Command: "unmute", Description: "🔔 Включить уведомления"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	go c.watchEvents(ctx)
	c.bot.Start(ctx)
	return nil
}

// watchEvents логирует события движка напоминаний
func (c *BotController) watchEvents(ctx context.Context) {
	events, cancel := c.events.Subscribe(16)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			switch ev := e.(type) {
			case model.AlarmFired:
				c.logger.Debug("Alarm fired event",
					zap.String("alarm_id", ev.Alarm.ID),
					zap.String("user_id", ev.Alarm.UserID))
			case model.AlarmResolved:
				fields := []zap.Field{
					zap.String("alarm_id", ev.AlarmID),
					zap.String("action", string(ev.Action)),
					zap.Bool("timed_out", ev.TimedOut),
				}
				if ev.Snoozed != nil {
					fields = append(fields, zap.String("snoozed_id", ev.Snoozed.ID))
				}
				c.logger.Debug("Alarm resolved event", fields...)
			}
		}
	}
}
