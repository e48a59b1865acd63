package state

import (
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/callbacks/callbacktypes"
)

// Adapter адаптирует state.Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

// NewAdapter создает адаптер для Manager
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

// GetState получает текущее состояние пользователя
func (a *Adapter) GetState(chatID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(chatID))
}

// SetState устанавливает состояние пользователя
func (a *Adapter) SetState(chatID int64, state callbacktypes.UserState) {
	a.sm.SetState(chatID, UserState(state))
}

// GetData получает временные данные пользователя
func (a *Adapter) GetData(chatID int64, key string) (interface{}, bool) {
	return a.sm.GetData(chatID, key)
}

// SetData устанавливает временные данные пользователя
func (a *Adapter) SetData(chatID int64, key string, value interface{}) {
	a.sm.SetData(chatID, key, value)
}

// ClearState очищает состояние и данные пользователя
func (a *Adapter) ClearState(chatID int64) {
	a.sm.ClearState(chatID)
}

// IsMuted включён ли тихий режим чата
func (a *Adapter) IsMuted(chatID int64) bool {
	return a.sm.IsMuted(chatID)
}
