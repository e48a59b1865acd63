package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/repository"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"github.com/jmhodges/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 19.10.2026 - понедельник
var monday9 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// overlapPlayer запоминает, не начиналось ли воспроизведение поверх текущего
type overlapPlayer struct {
	mu       sync.Mutex
	playing  bool
	plays    int
	overlaps int
}

func (p *overlapPlayer) Play(context.Context, string, float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.overlaps++
	}
	p.playing = true
	p.plays++
	return nil
}

func (p *overlapPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return nil
}

func (p *overlapPlayer) Stats() (plays, overlaps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays, p.overlaps
}

type stubPlatform struct {
	mu        sync.Mutex
	denied    bool
	withdrawn int
}

func (p *stubPlatform) Permitted(context.Context, string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.denied
}

func (p *stubPlatform) Present(_ context.Context, n service.Notification) (string, error) {
	return "msg-" + n.AlarmID, nil
}

func (p *stubPlatform) Withdraw(context.Context, string, string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withdrawn++
	return nil
}

func (p *stubPlatform) Withdrawn() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.withdrawn
}

type harness struct {
	clk        clock.FakeClock
	store      *repository.FileAlarmRepository
	player     *overlapPlayer
	platform   *stubPlatform
	dispatcher *service.NotificationDispatcher
	scheduler  *Scheduler
	events     <-chan model.Event
}

func newHarness(t *testing.T, autoStop time.Duration) *harness {
	t.Helper()

	logger := zap.NewNop()
	clk := clock.NewFake()
	clk.Add(monday9.Sub(clk.Now()))

	store := repository.NewFileAlarmRepository(afero.NewMemMapFs(), "alarms.json", logger)
	player := &overlapPlayer{}
	platform := &stubPlatform{}

	playback := service.NewPlaybackController(service.NewSoundCatalog("sounds"), player, nil, autoStop, logger)
	dispatcher := service.NewNotificationDispatcher(platform, logger)
	snoozer := service.NewSnoozeManager(store, playback, clk, logger)

	s := NewScheduler(store, playback, dispatcher, snoozer, clk, time.Second, logger)
	events, cancel := s.Subscribe(32)

	t.Cleanup(func() {
		s.Wait()
		cancel()
	})

	return &harness{
		clk:        clk,
		store:      store,
		player:     player,
		platform:   platform,
		dispatcher: dispatcher,
		scheduler:  s,
		events:     events,
	}
}

func (h *harness) addAlarm(t *testing.T, mutate func(*model.Alarm)) string {
	t.Helper()
	a := model.Alarm{
		UserID:   "42",
		Title:    "Пара",
		Time:     model.NewTimeOfDay(9, 0),
		Days:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Type:     model.AlarmTypeStudy,
		Sound:    "gentle-chime",
		Volume:   60,
		Enabled:  true,
		Priority: model.PriorityMedium,
	}
	if mutate != nil {
		mutate(&a)
	}
	id, err := h.store.Create(context.Background(), a)
	require.NoError(t, err)
	return id
}

func (h *harness) get(t *testing.T, id string) (model.Alarm, bool) {
	t.Helper()
	all, err := h.store.ListAll(context.Background())
	require.NoError(t, err)
	for _, a := range all {
		if a.ID == id {
			return a, true
		}
	}
	return model.Alarm{}, false
}

func (h *harness) answer(t *testing.T, id string, action model.Action) {
	t.Helper()
	require.Eventually(t, func() bool { return h.dispatcher.Pending(id) }, 2*time.Second, 5*time.Millisecond)
	require.True(t, h.dispatcher.Resolve(id, action))
}

func nextEvent(t *testing.T, events <-chan model.Event) model.Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no scheduler event")
		return nil
	}
}

func expectFired(t *testing.T, events <-chan model.Event) model.Alarm {
	t.Helper()
	e := nextEvent(t, events)
	fired, ok := e.(model.AlarmFired)
	require.True(t, ok, "expected AlarmFired, got %T", e)
	return fired.Alarm
}

func expectResolved(t *testing.T, events <-chan model.Event) model.AlarmResolved {
	t.Helper()
	e := nextEvent(t, events)
	resolved, ok := e.(model.AlarmResolved)
	require.True(t, ok, "expected AlarmResolved, got %T", e)
	return resolved
}

func expectQuiet(t *testing.T, events <-chan model.Event) {
	t.Helper()
	select {
	case e := <-events:
		t.Fatalf("unexpected event %T", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScheduler_FiresOncePerMinute(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, nil)

	h.scheduler.Tick(ctx)
	fired := expectFired(t, h.events)
	assert.Equal(t, id, fired.ID)
	assert.Equal(t, StateFiring, h.scheduler.State())
	assert.Equal(t, id, h.scheduler.Current())

	stored, ok := h.get(t, id)
	require.True(t, ok)
	require.NotNil(t, stored.LastTriggered)
	assert.True(t, stored.LastTriggered.Equal(monday9))
	assert.True(t, stored.Enabled, "recurring alarm stays enabled")

	h.answer(t, id, model.ActionDismiss)
	resolved := expectResolved(t, h.events)
	assert.Equal(t, model.ActionDismiss, resolved.Action)
	assert.False(t, resolved.TimedOut)
	assert.Nil(t, resolved.Snoozed)

	h.clk.Add(time.Second)
	h.scheduler.Tick(ctx)
	expectQuiet(t, h.events)
	assert.Equal(t, StateIdle, h.scheduler.State())
	assert.Zero(t, h.scheduler.QueueLen())
}

func TestScheduler_FiresAgainNextWeek(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, nil)

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	h.answer(t, id, model.ActionDismiss)
	expectResolved(t, h.events)

	// суббота 09:00 - не будний день
	h.clk.Add(5 * 24 * time.Hour)
	h.scheduler.Tick(ctx)
	expectQuiet(t, h.events)

	h.clk.Add(2 * 24 * time.Hour)
	h.scheduler.Tick(ctx)
	fired := expectFired(t, h.events)
	assert.Equal(t, id, fired.ID)
	h.answer(t, id, model.ActionDismiss)
	expectResolved(t, h.events)
}

func TestScheduler_DuplicateTickWhileFiring(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, nil)

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)

	h.clk.Add(time.Second)
	h.scheduler.Tick(ctx)
	assert.Zero(t, h.scheduler.QueueLen())

	h.answer(t, id, model.ActionDismiss)
	expectResolved(t, h.events)
	expectQuiet(t, h.events)
}

func TestScheduler_CoincidentAlarmsNeverOverlap(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 30*time.Millisecond)
	ids := map[string]bool{
		h.addAlarm(t, nil): true,
		h.addAlarm(t, nil): true,
		h.addAlarm(t, nil): true,
	}

	h.scheduler.Tick(ctx)
	assert.Equal(t, 2, h.scheduler.QueueLen())

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		fired := expectFired(t, h.events)
		resolved := expectResolved(t, h.events)

		assert.Equal(t, fired.ID, resolved.AlarmID)
		assert.True(t, resolved.TimedOut)
		assert.Equal(t, model.ActionDismiss, resolved.Action)
		seen[fired.ID] = true
	}

	assert.Equal(t, ids, seen)
	plays, overlaps := h.player.Stats()
	assert.Equal(t, 3, plays)
	assert.Zero(t, overlaps)
	assert.Equal(t, 3, h.platform.Withdrawn(), "timed out notifications are withdrawn")

	require.Eventually(t, func() bool { return h.scheduler.State() == StateIdle }, time.Second, 5*time.Millisecond)
}

func TestScheduler_DisableWhileAnotherFires(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	first := h.addAlarm(t, nil)
	second := h.addAlarm(t, func(a *model.Alarm) { a.Time = model.NewTimeOfDay(9, 1) })

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)

	disabled := false
	ok, err := h.store.Update(ctx, second, model.AlarmPatch{Enabled: &disabled})
	require.NoError(t, err)
	require.True(t, ok)

	h.clk.Add(time.Minute)
	h.scheduler.Tick(ctx)
	assert.Zero(t, h.scheduler.QueueLen())
	assert.Equal(t, first, h.scheduler.Current(), "active session is not affected")

	h.answer(t, first, model.ActionDismiss)
	expectResolved(t, h.events)
	expectQuiet(t, h.events)

	stored, _ := h.get(t, second)
	assert.Nil(t, stored.LastTriggered)
}

func TestScheduler_SnoozeCreatesDerivative(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, func(a *model.Alarm) {
		a.SnoozeEnabled = true
		a.SnoozeInterval = 5
	})

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	h.answer(t, id, model.ActionSnooze)

	resolved := expectResolved(t, h.events)
	assert.Equal(t, model.ActionSnooze, resolved.Action)
	require.NotNil(t, resolved.Snoozed)
	snoozedID := resolved.Snoozed.ID
	assert.Equal(t, model.NewTimeOfDay(9, 5), resolved.Snoozed.Time)

	original, ok := h.get(t, id)
	require.True(t, ok)
	assert.Equal(t, model.NewTimeOfDay(9, 0), original.Time)
	assert.False(t, original.Snoozed)

	h.clk.Add(5 * time.Minute)
	h.scheduler.Tick(ctx)
	fired := expectFired(t, h.events)
	assert.Equal(t, snoozedID, fired.ID)
	assert.Equal(t, "Пара (отложено)", fired.DisplayTitle())

	h.answer(t, snoozedID, model.ActionDismiss)
	expectResolved(t, h.events)

	require.Eventually(t, func() bool {
		_, exists := h.get(t, snoozedID)
		return !exists
	}, time.Second, 5*time.Millisecond)
	_, exists := h.get(t, id)
	assert.True(t, exists)
}

func TestScheduler_SnoozeDisabledResolvesAsDismiss(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, nil)

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	h.answer(t, id, model.ActionSnooze)

	resolved := expectResolved(t, h.events)
	assert.Equal(t, model.ActionDismiss, resolved.Action)
	assert.Nil(t, resolved.Snoozed)

	all, err := h.store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestScheduler_OneTimeAlarmIsRetired(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 20*time.Millisecond)
	id := h.addAlarm(t, func(a *model.Alarm) { a.Days = nil })

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	expectResolved(t, h.events)

	stored, ok := h.get(t, id)
	require.True(t, ok)
	assert.False(t, stored.Enabled)

	h.clk.Add(24 * time.Hour)
	h.scheduler.Tick(ctx)
	expectQuiet(t, h.events)
}

func TestScheduler_NoPermissionPlaysUntilAutoStop(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 30*time.Millisecond)
	h.platform.denied = true
	id := h.addAlarm(t, nil)

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	assert.False(t, h.dispatcher.Pending(id))

	resolved := expectResolved(t, h.events)
	assert.Equal(t, model.ActionDismiss, resolved.Action)
	assert.True(t, resolved.TimedOut)

	plays, _ := h.player.Stats()
	assert.Equal(t, 1, plays)
}

func TestScheduler_UrgentTimeoutKeepsNotification(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 20*time.Millisecond)
	h.addAlarm(t, func(a *model.Alarm) { a.Priority = model.PriorityUrgent })

	h.scheduler.Tick(ctx)
	expectFired(t, h.events)
	resolved := expectResolved(t, h.events)

	assert.True(t, resolved.TimedOut)
	assert.Zero(t, h.platform.Withdrawn())
}

func TestScheduler_DeletedBeforeFiringIsSkipped(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, time.Minute)
	id := h.addAlarm(t, nil)

	alarm, _ := h.get(t, id)
	_, err := h.store.Delete(ctx, id)
	require.NoError(t, err)

	h.scheduler.enqueue(ctx, alarm, h.clk.Now())
	assert.Zero(t, h.scheduler.QueueLen())
}

func TestScheduler_StartStop(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond)
	h.scheduler.interval = 10 * time.Millisecond
	h.addAlarm(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.scheduler.Start(ctx)
	expectFired(t, h.events)
	expectResolved(t, h.events)

	h.scheduler.Stop()
	h.scheduler.Stop()
}

func TestScheduler_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 10*time.Millisecond)
	_, cancel := h.scheduler.Subscribe(0)
	defer cancel()

	h.addAlarm(t, nil)
	h.scheduler.Tick(ctx)

	expectFired(t, h.events)
	expectResolved(t, h.events)
}
