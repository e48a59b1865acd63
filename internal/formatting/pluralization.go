package formatting

import "fmt"

// PluralizeDays возвращает правильное склонение слова "день"
func PluralizeDays(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "день"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "дня"
	}
	return "дней"
}

// PluralizeAlarms возвращает правильное склонение слова "напоминание"
func PluralizeAlarms(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "напоминание"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "напоминания"
	}
	return "напоминаний"
}

// Days форматирует количество дней: "3 дня"
func Days(count int) string {
	return fmt.Sprintf("%d %s", count, PluralizeDays(count))
}
