package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeDays(t *testing.T) {
	assert.Equal(t, "1 день", Days(1))
	assert.Equal(t, "3 дня", Days(3))
	assert.Equal(t, "7 дней", Days(7))
	assert.Equal(t, "11 дней", Days(11))
	assert.Equal(t, "21 день", Days(21))
	assert.Equal(t, "напоминания", PluralizeAlarms(2))
}

func TestFormatWeekdays(t *testing.T) {
	assert.Equal(t, "однократно", FormatWeekdays(nil))
	assert.Equal(t, "Пн, Ср, Вс", FormatWeekdays([]time.Weekday{time.Sunday, time.Wednesday, time.Monday}))
	assert.Equal(t, "ежедневно", FormatWeekdays([]time.Weekday{0, 1, 2, 3, 4, 5, 6}))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "5 мин", FormatMinutes(5))
	assert.Equal(t, "2 ч", FormatMinutes(120))
	assert.Equal(t, "1 ч 30 мин", FormatMinutes(90))
}
