package alarms

import (
	"testing"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestToggleDay(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Wednesday}

	added := ToggleDay(days, time.Sunday)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday, time.Wednesday}, added)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, days, "input is not modified")

	removed := ToggleDay(added, time.Monday)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Wednesday}, removed)

	assert.Equal(t, []time.Weekday{time.Friday}, ToggleDay(nil, time.Friday))
}

func TestDaysPrompt(t *testing.T) {
	text := DaysPrompt("Пара & семинар", model.NewTimeOfDay(8, 30), weekdays)

	assert.Contains(t, text, "08:30")
	assert.Contains(t, text, "Пара &amp; семинар")
	assert.Contains(t, text, "Пн, Вт, Ср, Чт, Пт")
}
