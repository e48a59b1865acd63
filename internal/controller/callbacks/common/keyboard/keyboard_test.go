package keyboard

import (
	"testing"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	b := NewBuilder().Grid(3,
		Button("1", "a"), Button("2", "b"), Button("3", "c"),
		Button("4", "d"), Button("5", "e"),
	)

	kb := b.Build()
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 2)
	assert.Equal(t, "e", kb.InlineKeyboard[1][1].CallbackData)
}

func TestBuilder_SkipsEmptyRows(t *testing.T) {
	b := NewBuilder().Row().Row(Button("x", "y"))
	assert.Equal(t, 1, b.Rows())
}

func TestPagination(t *testing.T) {
	assert.Nil(t, PaginationButtons("alarms_page:", 0, 1))

	first := PaginationButtons("alarms_page:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, "noop", first[0].CallbackData)
	assert.Equal(t, "alarms_page:1", first[1].CallbackData)

	middle := PaginationButtons("alarms_page:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "alarms_page:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)

	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 2, TotalPages(6, 5))

	start, end, page := PageBounds(12, 5, 9)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)
	assert.Equal(t, 2, page)
}

func TestAlarmPrompt(t *testing.T) {
	kb := AlarmPrompt("id1", []model.Action{model.ActionDismiss}, 10)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "alarm_dismiss:id1", kb.InlineKeyboard[0][0].CallbackData)
}

func TestAlarmControls(t *testing.T) {
	a := model.Alarm{ID: "id1", Time: model.NewTimeOfDay(7, 5), Enabled: false}

	buttons := AlarmControls(a)
	require.Len(t, buttons, 2)
	assert.Equal(t, "▶️ 07:05", buttons[0].Text)
	assert.Equal(t, "alarm_toggle:id1", buttons[0].CallbackData)
	assert.Equal(t, "alarm_delete:id1", buttons[1].CallbackData)
}

func TestWeekdayPicker(t *testing.T) {
	kb := WeekdayPicker([]time.Weekday{time.Monday, time.Sunday})

	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "✅ Пн", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "day_toggle:1", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "Вт", kb.InlineKeyboard[0][1].Text)
	assert.Equal(t, "✅ Вс", kb.InlineKeyboard[1][2].Text)
	assert.Equal(t, "day_toggle:0", kb.InlineKeyboard[1][2].CallbackData)
	assert.Equal(t, "days_done", kb.InlineKeyboard[3][0].CallbackData)
}
