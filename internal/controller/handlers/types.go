package handlers

import (
	"github.com/Freeeeeet/study_alarm_bot/internal/controller/state"
	"github.com/Freeeeeet/study_alarm_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	alarmService *service.AlarmService
	catalog      *service.SoundCatalog
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	alarmService *service.AlarmService,
	catalog *service.SoundCatalog,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		alarmService: alarmService,
		catalog:      catalog,
		stateManager: stateManager,
		logger:       logger,
	}
}
