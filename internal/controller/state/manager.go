package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // chatID -> UserData
	muted  map[int64]bool      // переживает ClearState
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		muted:  make(map[int64]bool),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Данные (например, черновики) остаются до ClearState
		if userData, exists := sm.states[chatID]; exists {
			userData.State = StateNone
		}
		return
	}

	sm.ensure(chatID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(chatID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(chatID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(chatID).Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

// GetAllData получает все временные данные пользователя
func (sm *Manager) GetAllData(chatID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		// Возвращаем копию, чтобы избежать race condition
		dataCopy := make(map[string]interface{})
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// SetMuted включает или выключает тихий режим чата
func (sm *Manager) SetMuted(chatID int64, muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if muted {
		sm.muted[chatID] = true
		return
	}
	delete(sm.muted, chatID)
}

// IsMuted включён ли тихий режим
func (sm *Manager) IsMuted(chatID int64) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.muted[chatID]
}

func (sm *Manager) ensure(chatID int64) *UserData {
	userData, exists := sm.states[chatID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[chatID] = userData
	}
	return userData
}
