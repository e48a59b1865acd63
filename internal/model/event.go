package model

// Action выбор пользователя в уведомлении
type Action string

const (
	ActionDismiss Action = "dismiss"
	ActionSnooze  Action = "snooze"
)

// Event событие планировщика для подписчиков (UI, дашборды)
type Event interface {
	isEvent()
}

// AlarmFired сессия срабатывания началась
type AlarmFired struct {
	Alarm Alarm
}

// AlarmResolved сессия завершена выключением, откладыванием или по таймауту
type AlarmResolved struct {
	AlarmID  string
	Action   Action
	TimedOut bool
	Snoozed  *Alarm // новая отложенная копия, если была создана
}

func (AlarmFired) isEvent()    {}
func (AlarmResolved) isEvent() {}
