package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAlarm() Alarm {
	return Alarm{
		ID:       "a1",
		UserID:   "42",
		Title:    "Математика",
		Time:     NewTimeOfDay(9, 0),
		Days:     []time.Weekday{time.Monday, time.Wednesday},
		Type:     AlarmTypeStudy,
		Sound:    "gentle-chime",
		Volume:   70,
		Enabled:  true,
		Priority: PriorityMedium,
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, tod.Hour())
	assert.Equal(t, 45, tod.Minute())
	assert.Equal(t, "07:45", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("nine")
	assert.Error(t, err)
}

func TestAlarmJSONShape(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	a := validAlarm()
	a.LastTriggered = &at

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "09:00", raw["time"])
	assert.Equal(t, []any{float64(1), float64(3)}, raw["days"])
	assert.Equal(t, "2026-10-19T09:00:00Z", raw["lastTriggered"])

	var back Alarm
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.Time, back.Time)
	assert.Equal(t, a.Days, back.Days)
	require.NotNil(t, back.LastTriggered)
	assert.True(t, at.Equal(*back.LastTriggered))
}

func TestAlarmValidate(t *testing.T) {
	a := validAlarm()
	require.NoError(t, a.Validate())

	tests := []struct {
		name   string
		mutate func(*Alarm)
		field  string
	}{
		{"volume above range", func(a *Alarm) { a.Volume = 101 }, "volume"},
		{"negative volume", func(a *Alarm) { a.Volume = -1 }, "volume"},
		{"bad weekday", func(a *Alarm) { a.Days = []time.Weekday{7} }, "days"},
		{"snooze without interval", func(a *Alarm) { a.SnoozeEnabled = true; a.SnoozeInterval = 0 }, "snoozeInterval"},
		{"snooze of a whole day", func(a *Alarm) { a.SnoozeEnabled = true; a.SnoozeInterval = 24 * 60 }, "snoozeInterval"},
		{"time out of day", func(a *Alarm) { a.Time = TimeOfDay(24 * 60) }, "time"},
		{"unknown type", func(a *Alarm) { a.Type = "nap" }, "type"},
		{"unknown priority", func(a *Alarm) { a.Priority = "critical" }, "priority"},
		{"missing owner", func(a *Alarm) { a.UserID = "" }, "userId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAlarm()
			tt.mutate(&a)

			err := a.Validate()
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.field, vErr.Fields[0].Field)
		})
	}
}

func TestAlarmPatchApplyDoesNotTouchOriginal(t *testing.T) {
	a := validAlarm()
	enabled := false
	days := []time.Weekday{time.Friday}

	out := AlarmPatch{Enabled: &enabled, Days: &days}.Apply(a)

	assert.False(t, out.Enabled)
	assert.Equal(t, []time.Weekday{time.Friday}, out.Days)
	assert.True(t, a.Enabled)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, a.Days)
}

func TestAlarmCloneIsDeep(t *testing.T) {
	at := time.Now()
	a := validAlarm()
	a.LastTriggered = &at

	c := a.Clone()
	c.Days[0] = time.Sunday
	*c.LastTriggered = at.Add(time.Hour)

	assert.Equal(t, time.Monday, a.Days[0])
	assert.True(t, a.LastTriggered.Equal(at))
}

func TestActiveOnAndDisplayTitle(t *testing.T) {
	a := validAlarm()
	assert.True(t, a.ActiveOn(time.Monday))
	assert.False(t, a.ActiveOn(time.Tuesday))

	a.Days = nil
	assert.True(t, a.IsOneTime())
	assert.True(t, a.ActiveOn(time.Tuesday))

	a.Snoozed = true
	assert.Equal(t, "Математика (отложено)", a.DisplayTitle())
}
