package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/study_alarm_bot/internal/model"
	"github.com/Freeeeeet/study_alarm_bot/internal/repository/base"
)

// StudyRepository читает экзамены и историю учебных сессий.
// Таблицы ведут другие модули, здесь только чтение.
type StudyRepository struct {
	*base.Repository
}

func NewStudyRepository(db base.DB) *StudyRepository {
	return &StudyRepository{Repository: base.NewRepository(db)}
}

// Exams получает экзамены пользователя с дедлайном после from
func (r *StudyRepository) Exams(ctx context.Context, userID string, from time.Time) ([]model.Exam, error) {
	query := `
		SELECT id, user_id, title, deadline
		FROM exams
		WHERE user_id = $1 AND deadline > $2
		ORDER BY deadline
	`

	rows, err := r.Query(ctx, query, userID, from)
	if err != nil {
		return nil, fmt.Errorf("get exams: %w", err)
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var exam model.Exam
		if err := rows.Scan(&exam.ID, &exam.UserID, &exam.Title, &exam.Deadline); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		exams = append(exams, exam)
	}

	return exams, rows.Err()
}

// Sessions получает историю учебных сессий пользователя
func (r *StudyRepository) Sessions(ctx context.Context, userID string) ([]model.StudySession, error) {
	query := `
		SELECT user_id, started_at, duration_minutes
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get study sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.StudySession
	for rows.Next() {
		var (
			session  model.StudySession
			duration int32
		)
		if err := rows.Scan(&session.UserID, &session.StartedAt, &duration); err != nil {
			return nil, fmt.Errorf("scan study session: %w", err)
		}
		session.DurationMinutes = int(duration)
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
