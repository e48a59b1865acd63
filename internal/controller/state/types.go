package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для создания напоминания
	StateCreateAlarmTime  UserState = "create_alarm_time"
	StateCreateAlarmTitle UserState = "create_alarm_title"
	StateCreateAlarmDays  UserState = "create_alarm_days"
)

// Ключи временных данных диалога
const (
	KeyAlarmTime  = "alarm_time"
	KeyAlarmTitle = "alarm_title"
	KeyAlarmDays  = "alarm_days"
	KeyDrafts     = "drafts"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
