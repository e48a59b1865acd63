package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"go.uber.org/zap"
)

// DefaultAutoStop через сколько воспроизведение останавливается само
const DefaultAutoStop = 30 * time.Second

// VibrationPattern паттерн вибрации в начале сессии: вибрация, пауза, вибрация
var VibrationPattern = []time.Duration{500 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

// Player устройство воспроизведения звука
type Player interface {
	// Play начинает зацикленное воспроизведение, gain в диапазоне 0..1
	Play(ctx context.Context, assetRef string, gain float64) error
	// Stop останавливает воспроизведение, повторный вызов безопасен
	Stop() error
}

// Vibrator необязательный примитив вибрации платформы
type Vibrator interface {
	Vibrate(ctx context.Context, userID string, pattern []time.Duration) error
}

type playbackSession struct {
	alarmID string
	timer   *time.Timer
	expired chan struct{}
}

// PlaybackController владеет единственной сессией звука и вибрации.
// Эксклюзивность сессий обеспечивает Scheduler, здесь она не проверяется.
type PlaybackController struct {
	mu       sync.Mutex
	catalog  *SoundCatalog
	player   Player
	vibrator Vibrator
	autoStop time.Duration
	logger   *zap.Logger
	session  *playbackSession
}

// NewPlaybackController создаёт контроллер; vibrator может быть nil
func NewPlaybackController(catalog *SoundCatalog, player Player, vibrator Vibrator, autoStop time.Duration, logger *zap.Logger) *PlaybackController {
	if autoStop <= 0 {
		autoStop = DefaultAutoStop
	}
	return &PlaybackController{
		catalog:  catalog,
		player:   player,
		vibrator: vibrator,
		autoStop: autoStop,
		logger:   logger,
	}
}

// Start начинает сессию для напоминания. Возвращаемый канал закрывается,
// когда срабатывает автоостановка. Ошибки воспроизведения только логируются.
func (p *PlaybackController) Start(ctx context.Context, alarm model.Alarm) <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	if alarm.Vibrate && p.vibrator != nil {
		if err := p.vibrator.Vibrate(ctx, alarm.UserID, VibrationPattern); err != nil {
			p.logger.Warn("Vibration failed",
				zap.String("alarm_id", alarm.ID),
				zap.Error(err))
		}
	}

	sound, err := p.catalog.Resolve(alarm.Sound)
	if err != nil {
		p.logger.Warn("Unknown sound, using default",
			zap.String("alarm_id", alarm.ID),
			zap.String("sound", alarm.Sound))
		sound, _ = p.catalog.Resolve(DefaultSound)
	}

	if err := p.player.Play(ctx, sound.AssetRef, DeviceGain(alarm.Volume)); err != nil {
		p.logger.Warn("Playback failed, continuing with notification",
			zap.String("alarm_id", alarm.ID),
			zap.String("asset", sound.AssetRef),
			zap.Error(err))
	}

	session := &playbackSession{
		alarmID: alarm.ID,
		expired: make(chan struct{}),
	}
	session.timer = time.AfterFunc(p.autoStop, func() { p.expire(session) })
	p.session = session

	p.logger.Debug("Playback started",
		zap.String("alarm_id", alarm.ID),
		zap.String("sound", sound.ID),
		zap.Int("volume", alarm.Volume))

	return session.expired
}

// Stop останавливает текущую сессию и снимает таймер автоостановки
func (p *PlaybackController) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return
	}
	p.session.timer.Stop()
	p.stopLocked()
}

// Active есть ли активная сессия
func (p *PlaybackController) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil
}

func (p *PlaybackController) expire(session *playbackSession) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Сессия уже остановлена вручную
	if p.session != session {
		return
	}

	p.logger.Debug("Playback auto-stopped", zap.String("alarm_id", session.alarmID))
	p.stopLocked()
	close(session.expired)
}

func (p *PlaybackController) stopLocked() {
	if err := p.player.Stop(); err != nil {
		p.logger.Warn("Failed to stop player",
			zap.String("alarm_id", p.session.alarmID),
			zap.Error(err))
	}
	p.session = nil
}

// DeviceGain переводит громкость 0-100 в диапазон устройства 0..1
func DeviceGain(volume int) float64 {
	switch {
	case volume <= 0:
		return 0
	case volume >= 100:
		return 1
	}
	return float64(volume) / 100
}
