package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/study_alarm_bot/internal/app"
	"github.com/Freeeeeet/study_alarm_bot/internal/config"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller"
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/player"
	"github.com/Freeeeeet/study_alarm_bot/internal/repository"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmhodges/clock"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting study alarm bot",
		zap.String("environment", cfg.Environment),
		zap.Bool("database", cfg.UseDatabase()),
		zap.Duration("tick_interval", cfg.TickInterval),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Хранилище: PostgreSQL если задан DSN, иначе JSON файл
	var (
		store service.AlarmStore
		study service.StudySource
	)
	if cfg.UseDatabase() {
		pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("Failed to ping database", zap.Error(err))
		}

		migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		if err := migrator.Close(); err != nil {
			logger.Warn("Failed to close migrator", zap.Error(err))
		}

		store = repository.NewAlarmRepository(pool, logger)
		study = repository.NewStudyRepository(pool)
	} else {
		store = repository.NewFileAlarmRepository(afero.NewOsFs(), cfg.AlarmsFile, logger)
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	clk := clock.New()
	stateManager := state.NewManager()
	catalog := service.NewSoundCatalog(cfg.SoundsDir)

	// Вибрации в Telegram нет
	playback := service.NewPlaybackController(
		catalog,
		player.NewCommandPlayer(cfg.PlayerCommand, logger),
		nil,
		cfg.AutoStop,
		logger,
	)
	dispatcher := service.NewNotificationDispatcher(controller.NewTelegramPlatform(b, stateManager), logger)
	snoozer := service.NewSnoozeManager(store, playback, clk, logger)

	scheduler := app.NewScheduler(store, playback, dispatcher, snoozer, clk, cfg.TickInterval, logger)
	alarmService := service.NewAlarmService(store, study, clk, logger)

	botController := controller.NewBotController(b, alarmService, catalog, dispatcher, stateManager, scheduler, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	scheduler.Start(ctx)

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	scheduler.Stop()
	scheduler.Wait()

	logger.Info("Study alarm bot stopped")
}
