package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileAlarmRepository хранит напоминания JSON-массивом в одном файле.
// Все операции сериализованы одним мьютексом.
type FileAlarmRepository struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewFileAlarmRepository создаёт файловый репозиторий
func NewFileAlarmRepository(fs afero.Fs, path string, logger *zap.Logger) *FileAlarmRepository {
	return &FileAlarmRepository{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Create сохраняет новое напоминание и возвращает его ID
func (r *FileAlarmRepository) Create(ctx context.Context, alarm model.Alarm) (string, error) {
	if alarm.ID == "" {
		alarm.ID = uuid.NewString()
	}
	if alarm.CreatedAt.IsZero() {
		alarm.CreatedAt = time.Now()
	}
	if err := alarm.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return "", fmt.Errorf("create alarm: %w", err)
	}
	for _, a := range alarms {
		if a.ID == alarm.ID {
			return "", fmt.Errorf("create alarm: id %s already exists", alarm.ID)
		}
	}

	alarms = append(alarms, alarm.Clone())
	if err := r.save(alarms); err != nil {
		return "", fmt.Errorf("create alarm: %w", err)
	}

	r.logger.Debug("Alarm created",
		zap.String("alarm_id", alarm.ID),
		zap.String("user_id", alarm.UserID),
	)

	return alarm.ID, nil
}

// Update применяет частичное изменение; false если напоминания нет
func (r *FileAlarmRepository) Update(ctx context.Context, id string, patch model.AlarmPatch) (bool, error) {
	return r.modify(id, func(a model.Alarm) (model.Alarm, error) {
		updated := patch.Apply(a)
		if err := updated.Validate(); err != nil {
			return model.Alarm{}, err
		}
		return updated, nil
	})
}

// Toggle переключает enabled под той же блокировкой, что и остальные записи
func (r *FileAlarmRepository) Toggle(ctx context.Context, id string) (bool, bool, error) {
	var enabled bool
	found, err := r.modify(id, func(a model.Alarm) (model.Alarm, error) {
		a.Enabled = !a.Enabled
		enabled = a.Enabled
		return a, nil
	})
	if err != nil {
		return false, false, err
	}
	return enabled, found, nil
}

// RecordTrigger записывает момент срабатывания. При retire напоминание выключается.
func (r *FileAlarmRepository) RecordTrigger(ctx context.Context, id string, at time.Time, retire bool) (bool, error) {
	return r.modify(id, func(a model.Alarm) (model.Alarm, error) {
		a.LastTriggered = &at
		if retire {
			a.Enabled = false
		}
		return a, nil
	})
}

// Delete удаляет напоминание; false если его не было
func (r *FileAlarmRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return false, fmt.Errorf("delete alarm: %w", err)
	}

	for i, a := range alarms {
		if a.ID != id {
			continue
		}
		alarms = append(alarms[:i], alarms[i+1:]...)
		if err := r.save(alarms); err != nil {
			return false, fmt.Errorf("delete alarm: %w", err)
		}
		return true, nil
	}

	return false, nil
}

// List получает напоминания пользователя
func (r *FileAlarmRepository) List(ctx context.Context, userID string) ([]model.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	var result []model.Alarm
	for _, a := range alarms {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ListAll получает снимок всех напоминаний
func (r *FileAlarmRepository) ListAll(ctx context.Context) ([]model.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("list all alarms: %w", err)
	}
	return alarms, nil
}

func (r *FileAlarmRepository) modify(id string, fn func(model.Alarm) (model.Alarm, error)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return false, fmt.Errorf("update alarm: %w", err)
	}

	for i, a := range alarms {
		if a.ID != id {
			continue
		}
		updated, err := fn(a)
		if err != nil {
			return false, err
		}
		alarms[i] = updated
		if err := r.save(alarms); err != nil {
			return false, fmt.Errorf("update alarm: %w", err)
		}
		return true, nil
	}

	return false, nil
}

// load читает файл целиком; отсутствующий файл - пустой список
func (r *FileAlarmRepository) load() ([]model.Alarm, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var alarms []model.Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return alarms, nil
}

// save пишет во временный файл и атомарно подменяет основной
func (r *FileAlarmRepository) save(alarms []model.Alarm) error {
	out := make([]model.Alarm, 0, len(alarms))
	for _, a := range alarms {
		if a.Days == nil {
			a.Days = []time.Weekday{}
		}
		out = append(out, a)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	tmp := r.path + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := r.fs.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
