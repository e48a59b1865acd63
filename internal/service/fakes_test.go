package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/repository"
	"github.com/jmhodges/clock"
	"github.com/spf13/afero"
	"go.uber.org/zap/zaptest"
)

func fakeClockAt(at time.Time) clock.FakeClock {
	c := clock.NewFake()
	c.Add(at.Sub(c.Now()))
	return c
}

func newTestStore(t *testing.T) *repository.FileAlarmRepository {
	t.Helper()
	return repository.NewFileAlarmRepository(afero.NewMemMapFs(), "data/alarms.json", zaptest.NewLogger(t))
}

type play struct {
	asset string
	gain  float64
}

type fakePlayer struct {
	mu      sync.Mutex
	plays   []play
	stops   int
	playErr error
}

func (p *fakePlayer) Play(_ context.Context, assetRef string, gain float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays = append(p.plays, play{asset: assetRef, gain: gain})
	return p.playErr
}

func (p *fakePlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
	return nil
}

func (p *fakePlayer) Plays() []play {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]play(nil), p.plays...)
}

func (p *fakePlayer) Stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}

type fakeVibrator struct {
	mu    sync.Mutex
	users []string
}

func (v *fakeVibrator) Vibrate(_ context.Context, userID string, _ []time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.users = append(v.users, userID)
	return nil
}

func (v *fakeVibrator) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.users)
}

type fakePlatform struct {
	mu         sync.Mutex
	denied     map[string]bool
	presentErr error
	presented  []Notification
	withdrawn  []string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{denied: make(map[string]bool)}
}

func (p *fakePlatform) Permitted(_ context.Context, userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.denied[userID]
}

func (p *fakePlatform) Present(_ context.Context, n Notification) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.presentErr != nil {
		return "", p.presentErr
	}
	p.presented = append(p.presented, n)
	return fmt.Sprintf("ref-%s", n.AlarmID), nil
}

func (p *fakePlatform) Withdraw(_ context.Context, _ string, ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withdrawn = append(p.withdrawn, ref)
	return nil
}

func (p *fakePlatform) Presented() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Notification(nil), p.presented...)
}

func (p *fakePlatform) Withdrawn() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.withdrawn...)
}

type stopCounter struct {
	mu    sync.Mutex
	count int
}

func (s *stopCounter) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

func (s *stopCounter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

type fakeStudy struct {
	exams    []model.Exam
	sessions []model.StudySession
	err      error
}

func (f *fakeStudy) Exams(_ context.Context, userID string, from time.Time) ([]model.Exam, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Exam
	for _, e := range f.exams {
		if e.UserID == userID && e.Deadline.After(from) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStudy) Sessions(_ context.Context, userID string) ([]model.StudySession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.StudySession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

var errFake = errors.New("fake failure")
