package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestPlayback(t *testing.T, autoStop time.Duration) (*PlaybackController, *fakePlayer, *fakeVibrator) {
	player := &fakePlayer{}
	vibrator := &fakeVibrator{}
	pc := NewPlaybackController(NewSoundCatalog("sounds"), player, vibrator, autoStop, zaptest.NewLogger(t))
	return pc, player, vibrator
}

func TestPlaybackController_StartPlaysResolvedSound(t *testing.T) {
	pc, player, vibrator := newTestPlayback(t, time.Hour)

	a := weekdayAlarm()
	a.Sound = "focus-bell"
	a.Volume = 40
	a.Vibrate = true

	pc.Start(context.Background(), a)
	defer pc.Stop()

	plays := player.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "sounds/focus-bell.wav", plays[0].asset)
	assert.InDelta(t, 0.4, plays[0].gain, 1e-9)
	assert.Equal(t, 1, vibrator.Calls())
	assert.True(t, pc.Active())
}

func TestPlaybackController_UnknownSoundFallsBack(t *testing.T) {
	pc, player, vibrator := newTestPlayback(t, time.Hour)

	a := weekdayAlarm()
	a.Sound = "air-horn"

	pc.Start(context.Background(), a)
	defer pc.Stop()

	plays := player.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "sounds/"+DefaultSound+".wav", plays[0].asset)
	assert.Zero(t, vibrator.Calls())
}

func TestPlaybackController_AutoStop(t *testing.T) {
	pc, player, _ := newTestPlayback(t, 50*time.Millisecond)

	expired := pc.Start(context.Background(), weekdayAlarm())

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("playback was not auto-stopped")
	}

	assert.False(t, pc.Active())
	assert.Equal(t, 1, player.Stops())
}

func TestPlaybackController_StopBeforeExpiry(t *testing.T) {
	pc, player, _ := newTestPlayback(t, 50*time.Millisecond)

	expired := pc.Start(context.Background(), weekdayAlarm())
	pc.Stop()
	pc.Stop()

	assert.False(t, pc.Active())
	assert.Equal(t, 1, player.Stops())

	time.Sleep(150 * time.Millisecond)
	select {
	case <-expired:
		t.Fatal("expiry fired after manual stop")
	default:
	}
}

func TestPlaybackController_PlayErrorStillArmsExpiry(t *testing.T) {
	pc, player, _ := newTestPlayback(t, 20*time.Millisecond)
	player.playErr = errFake

	expired := pc.Start(context.Background(), weekdayAlarm())

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("expiry not armed after play failure")
	}
}

func TestDeviceGain(t *testing.T) {
	assert.Equal(t, 0.0, DeviceGain(-5))
	assert.Equal(t, 0.0, DeviceGain(0))
	assert.InDelta(t, 0.75, DeviceGain(75), 1e-9)
	assert.Equal(t, 1.0, DeviceGain(100))
	assert.Equal(t, 1.0, DeviceGain(180))
}

func TestSoundCatalog(t *testing.T) {
	c := NewSoundCatalog("assets")

	s, err := c.Resolve("urgent-alert")
	require.NoError(t, err)
	assert.Equal(t, "assets/urgent-alert.wav", s.AssetRef)

	_, err = c.Resolve("nope")
	assert.ErrorIs(t, err, model.ErrUnknownSound)

	sounds := c.Sounds()
	require.Len(t, sounds, 5)
	assert.Equal(t, "classic-bell", sounds[0].ID)
	assert.Equal(t, "urgent-alert", sounds[4].ID)
}

func TestSoundCatalog_AssetsShipWithRepo(t *testing.T) {
	fs := afero.NewOsFs()
	for _, s := range NewSoundCatalog(filepath.Join("..", "..", "sounds")).Sounds() {
		ok, err := afero.Exists(fs, s.AssetRef)
		require.NoError(t, err)
		assert.True(t, ok, "missing asset for %s: %s", s.ID, s.AssetRef)
	}
}
