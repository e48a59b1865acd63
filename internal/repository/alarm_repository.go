package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const alarmColumns = `id, user_id, title, description, time_of_day, days, type, sound, volume, enabled,
		snooze_enabled, snooze_interval, vibrate, exam_id, priority, snoozed, created_at, last_triggered`

// AlarmRepository хранит напоминания в PostgreSQL
type AlarmRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewAlarmRepository создаёт новый репозиторий
func NewAlarmRepository(db base.DB, logger *zap.Logger) *AlarmRepository {
	return &AlarmRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

// Create сохраняет новое напоминание и возвращает его ID
func (r *AlarmRepository) Create(ctx context.Context, alarm model.Alarm) (string, error) {
	if alarm.ID == "" {
		alarm.ID = uuid.NewString()
	}
	if alarm.CreatedAt.IsZero() {
		alarm.CreatedAt = time.Now()
	}
	if err := alarm.Validate(); err != nil {
		return "", err
	}

	query := `
		INSERT INTO alarms (` + alarmColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.DB().Exec(ctx, query, alarmArgs(alarm)...)
	if err != nil {
		return "", fmt.Errorf("create alarm: %w", err)
	}

	r.logger.Debug("Alarm created",
		zap.String("alarm_id", alarm.ID),
		zap.String("user_id", alarm.UserID),
	)

	return alarm.ID, nil
}

// Update применяет частичное изменение; false если напоминания нет.
// Чтение, проверка и запись выполняются под блокировкой строки.
func (r *AlarmRepository) Update(ctx context.Context, id string, patch model.AlarmPatch) (bool, error) {
	selectQuery := `SELECT ` + alarmColumns + ` FROM alarms WHERE id = $1 FOR UPDATE`
	updateQuery := `
		UPDATE alarms
		SET title = $2, description = $3, time_of_day = $4, days = $5, type = $6, sound = $7,
			volume = $8, enabled = $9, snooze_enabled = $10, snooze_interval = $11, vibrate = $12,
			exam_id = $13, priority = $14
		WHERE id = $1
	`

	found := true
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		current, err := scanAlarm(tx.QueryRow(ctx, selectQuery, id))
		if base.IsNotFound(err) {
			found = false
			return errNoAlarm
		}
		if err != nil {
			return fmt.Errorf("lock alarm: %w", err)
		}

		updated := patch.Apply(current)
		if err := updated.Validate(); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, updateQuery,
			updated.ID,
			updated.Title,
			updated.Description,
			int32(updated.Time),
			weekdaysToInts(updated.Days),
			string(updated.Type),
			updated.Sound,
			int32(updated.Volume),
			updated.Enabled,
			updated.SnoozeEnabled,
			int32(updated.SnoozeInterval),
			updated.Vibrate,
			updated.ExamID,
			string(updated.Priority),
		)
		if err != nil {
			return fmt.Errorf("write alarm: %w", err)
		}
		return nil
	})

	if !found {
		return false, nil
	}
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			return false, err
		}
		return false, fmt.Errorf("update alarm: %w", err)
	}

	return true, nil
}

// Toggle переключает enabled одним UPDATE и возвращает новое значение
func (r *AlarmRepository) Toggle(ctx context.Context, id string) (bool, bool, error) {
	query := `UPDATE alarms SET enabled = NOT enabled WHERE id = $1 RETURNING enabled`

	var enabled bool
	err := r.QueryRow(ctx, query, id).Scan(&enabled)
	if base.IsNotFound(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("toggle alarm: %w", err)
	}
	return enabled, true, nil
}

// Delete удаляет напоминание; false если его не было
func (r *AlarmRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM alarms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete alarm: %w", err)
	}
	return affected > 0, nil
}

// List получает напоминания пользователя
func (r *AlarmRepository) List(ctx context.Context, userID string) ([]model.Alarm, error) {
	query := `SELECT ` + alarmColumns + ` FROM alarms WHERE user_id = $1 ORDER BY time_of_day, created_at`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	return collectAlarms(rows)
}

// ListAll получает снимок всех напоминаний
func (r *AlarmRepository) ListAll(ctx context.Context) ([]model.Alarm, error) {
	query := `SELECT ` + alarmColumns + ` FROM alarms ORDER BY time_of_day, created_at`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all alarms: %w", err)
	}
	return collectAlarms(rows)
}

// RecordTrigger записывает момент срабатывания. При retire напоминание выключается.
// Одно условное UPDATE: удалённое напоминание не воскресает, выключенное не включается.
func (r *AlarmRepository) RecordTrigger(ctx context.Context, id string, at time.Time, retire bool) (bool, error) {
	query := `
		UPDATE alarms
		SET last_triggered = $2, enabled = CASE WHEN $3 THEN false ELSE enabled END
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id, at, retire)
	if err != nil {
		return false, fmt.Errorf("record alarm trigger: %w", err)
	}
	return affected > 0, nil
}

var errNoAlarm = errors.New("no alarm")

func collectAlarms(rows pgx.Rows) ([]model.Alarm, error) {
	defer rows.Close()

	var alarms []model.Alarm
	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		alarms = append(alarms, alarm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alarms: %w", err)
	}

	return alarms, nil
}

func scanAlarm(row pgx.Row) (model.Alarm, error) {
	var (
		alarm          model.Alarm
		timeOfDay      int32
		days           []int32
		alarmType      string
		priority       string
		volume         int32
		snoozeInterval int32
	)

	err := row.Scan(
		&alarm.ID,
		&alarm.UserID,
		&alarm.Title,
		&alarm.Description,
		&timeOfDay,
		&days,
		&alarmType,
		&alarm.Sound,
		&volume,
		&alarm.Enabled,
		&alarm.SnoozeEnabled,
		&snoozeInterval,
		&alarm.Vibrate,
		&alarm.ExamID,
		&priority,
		&alarm.Snoozed,
		&alarm.CreatedAt,
		&alarm.LastTriggered,
	)
	if err != nil {
		return model.Alarm{}, err
	}

	alarm.Time = model.TimeOfDay(timeOfDay)
	alarm.Days = intsToWeekdays(days)
	alarm.Type = model.AlarmType(alarmType)
	alarm.Priority = model.Priority(priority)
	alarm.Volume = int(volume)
	alarm.SnoozeInterval = int(snoozeInterval)

	return alarm, nil
}

func alarmArgs(a model.Alarm) []any {
	return []any{
		a.ID,
		a.UserID,
		a.Title,
		a.Description,
		int32(a.Time),
		weekdaysToInts(a.Days),
		string(a.Type),
		a.Sound,
		int32(a.Volume),
		a.Enabled,
		a.SnoozeEnabled,
		int32(a.SnoozeInterval),
		a.Vibrate,
		a.ExamID,
		string(a.Priority),
		a.Snoozed,
		a.CreatedAt,
		a.LastTriggered,
	}
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(days []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}
