package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"
)

// DefaultTickInterval период проверки напоминаний
const DefaultTickInterval = time.Second

// State состояние планировщика
type State int

const (
	StateIdle   State = iota // нет активной сессии
	StateFiring              // идёт сессия ровно одного напоминания
)

func (s State) String() string {
	if s == StateFiring {
		return "firing"
	}
	return "idle"
}

type sessionPlayback interface {
	Start(ctx context.Context, alarm model.Alarm) <-chan struct{}
	Stop()
}

type sessionNotifier interface {
	Show(ctx context.Context, alarm model.Alarm) service.Prompt
	Close(ctx context.Context, alarmID string)
}

type alarmSnoozer interface {
	Snooze(ctx context.Context, alarm model.Alarm) (model.Alarm, error)
}

// Scheduler раз в интервал ищет сработавшие напоминания и по одному
// проводит их через сессию звука и уведомления
type Scheduler struct {
	store    service.AlarmStore
	playback sessionPlayback
	notifier sessionNotifier
	snoozer  alarmSnoozer
	clk      clock.Clock
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	state    State
	queue    []model.Alarm
	inFlight map[string]bool // в очереди или в активной сессии
	current  string

	subMu       sync.Mutex
	subscribers map[int]chan model.Event
	nextSubID   int

	stopChan chan struct{}
	stopOnce sync.Once
	sessions sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	store service.AlarmStore,
	playback sessionPlayback,
	notifier sessionNotifier,
	snoozer alarmSnoozer,
	clk clock.Clock,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		store:       store,
		playback:    playback,
		notifier:    notifier,
		snoozer:     snoozer,
		clk:         clk,
		interval:    interval,
		logger:      logger,
		inFlight:    make(map[string]bool),
		subscribers: make(map[int]chan model.Event),
		stopChan:    make(chan struct{}),
	}
}

// Start запускает фоновый цикл проверки
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting alarm scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает цикл; активная сессия доигрывает до автоостановки
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping alarm scheduler")
		close(s.stopChan)
	})
}

// Wait ждёт завершения всех запущенных сессий
func (s *Scheduler) Wait() {
	s.sessions.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(ctx)
		case <-s.stopChan:
			s.logger.Info("Alarm scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Alarm scheduler cancelled")
			return
		}
	}
}

// Tick один проход: снимок напоминаний, поиск сработавших, постановка в очередь
// и запуск следующей сессии, если планировщик свободен
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.clk.Now()

	snapshot, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load alarms snapshot", zap.Error(err))
		return
	}

	for _, alarm := range service.DueAlarms(snapshot, now) {
		s.enqueue(ctx, alarm, now)
	}

	s.dispatchNext(ctx)
}

// State текущее состояние
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current ID напоминания в активной сессии, пусто если Idle
func (s *Scheduler) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// QueueLen количество ожидающих напоминаний
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Subscribe подписка на события. Медленный подписчик теряет события,
// цикл планировщика его не ждёт.
func (s *Scheduler) Subscribe(buffer int) (<-chan model.Event, func()) {
	ch := make(chan model.Event, buffer)

	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Scheduler) enqueue(ctx context.Context, alarm model.Alarm, now time.Time) {
	s.mu.Lock()
	if s.inFlight[alarm.ID] {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Одноразовые напоминания после срабатывания выключаются
	recorded, err := s.store.RecordTrigger(ctx, alarm.ID, now, alarm.IsOneTime())
	switch {
	case err != nil:
		s.logger.Warn("Failed to record alarm trigger, firing anyway",
			zap.String("alarm_id", alarm.ID),
			zap.Error(err))
	case !recorded:
		s.logger.Info("Alarm removed before firing, skipping", zap.String("alarm_id", alarm.ID))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[alarm.ID] {
		return
	}
	s.inFlight[alarm.ID] = true
	s.queue = append(s.queue, alarm)

	s.logger.Debug("Alarm queued",
		zap.String("alarm_id", alarm.ID),
		zap.Int("queue_len", len(s.queue)))
}

func (s *Scheduler) dispatchNext(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateFiring || len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}

	alarm := s.queue[0]
	s.queue = s.queue[1:]
	s.state = StateFiring
	s.current = alarm.ID
	s.sessions.Add(1)
	s.mu.Unlock()

	go s.runSession(ctx, alarm)
}

func (s *Scheduler) runSession(ctx context.Context, alarm model.Alarm) {
	defer s.sessions.Done()

	s.logger.Info("Alarm firing",
		zap.String("alarm_id", alarm.ID),
		zap.String("user_id", alarm.UserID),
		zap.String("title", alarm.Title))
	s.publish(model.AlarmFired{Alarm: alarm.Clone()})

	expired := s.playback.Start(ctx, alarm)
	prompt := s.notifier.Show(ctx, alarm)

	action, timedOut := s.await(ctx, prompt, expired)
	s.playback.Stop()
	if timedOut {
		s.notifier.Close(ctx, alarm.ID)
	}

	resolved := model.AlarmResolved{
		AlarmID:  alarm.ID,
		Action:   action,
		TimedOut: timedOut,
	}

	if action == model.ActionSnooze {
		snoozed, err := s.snoozer.Snooze(ctx, alarm)
		switch {
		case errors.Is(err, model.ErrSnoozeDisabled), errors.Is(err, model.ErrSnoozeTooLong):
			resolved.Action = model.ActionDismiss
		case err != nil:
			s.logger.Error("Failed to snooze alarm",
				zap.String("alarm_id", alarm.ID),
				zap.Error(err))
		default:
			resolved.Snoozed = &snoozed
		}
	}

	// Отложенная копия живёт ровно одно срабатывание
	if alarm.Snoozed {
		if _, err := s.store.Delete(ctx, alarm.ID); err != nil {
			s.logger.Warn("Failed to delete fired snoozed alarm",
				zap.String("alarm_id", alarm.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Alarm resolved",
		zap.String("alarm_id", alarm.ID),
		zap.String("action", string(resolved.Action)),
		zap.Bool("timed_out", timedOut))
	s.publish(resolved)

	s.finish(ctx, alarm.ID)
}

// await ждёт действие пользователя или автоостановку (она считается dismiss).
// Если уведомление не показано, звук доигрывает до автоостановки.
func (s *Scheduler) await(ctx context.Context, prompt service.Prompt, expired <-chan struct{}) (model.Action, bool) {
	if !prompt.Presented {
		select {
		case <-expired:
			return model.ActionDismiss, true
		case <-ctx.Done():
			return model.ActionDismiss, false
		}
	}

	select {
	case action := <-prompt.Actions:
		return action, false
	case <-expired:
		// Ответ мог прийти одновременно с таймаутом
		select {
		case action := <-prompt.Actions:
			return action, false
		default:
			return model.ActionDismiss, true
		}
	case <-ctx.Done():
		return model.ActionDismiss, false
	}
}

func (s *Scheduler) finish(ctx context.Context, alarmID string) {
	s.mu.Lock()
	delete(s.inFlight, alarmID)
	s.state = StateIdle
	s.current = ""
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	s.dispatchNext(ctx)
}

func (s *Scheduler) publish(event model.Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			s.logger.Warn("Event subscriber is slow, dropping event")
		}
	}
}
