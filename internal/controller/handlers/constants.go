package handlers

// Константы валидации для создания напоминания
const (
	AlarmTitleMinLength = 2
	AlarmTitleMaxLength = 100
)
