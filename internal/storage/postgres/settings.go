package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
)

func (s *Store) GetCursorPosition(ctx context.Context, planID string) (models.CursorPosition, error) {
	pos := models.CursorPosition{PlanID: planID}
	err := s.db.QueryRowContext(ctx,
		"SELECT week, task_index FROM cursors WHERE plan_id = $1", planID,
	).Scan(&pos.Week, &pos.TaskIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CursorPosition{}, fmt.Errorf("cursor for plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return models.CursorPosition{}, err
	}
	return pos, nil
}

func (s *Store) SaveCursorPosition(ctx context.Context, pos models.CursorPosition) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cursors (plan_id, week, task_index) VALUES ($1, $2, $3)
		ON CONFLICT (plan_id) DO UPDATE SET week = EXCLUDED.week, task_index = EXCLUDED.task_index`,
		pos.PlanID, pos.Week, pos.TaskIndex,
	)
	if err != nil {
		return fmt.Errorf("saving cursor position: %w", err)
	}
	return nil
}

func (s *Store) GetReminderSettings(ctx context.Context, planID string) (models.ReminderSettings, error) {
	r := models.ReminderSettings{PlanID: planID}
	var style string
	err := s.db.QueryRowContext(ctx, `
		SELECT start_hour, start_minute, end_hour, end_minute, interval_hours, message_style, is_active
		FROM reminder_settings WHERE plan_id = $1`, planID,
	).Scan(&r.StartHour, &r.StartMinute, &r.EndHour, &r.EndMinute, &r.IntervalHours, &style, &r.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReminderSettings{}, fmt.Errorf("reminder settings for plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return models.ReminderSettings{}, err
	}
	r.MessageStyle = constants.MessageStyle(style)
	return r, nil
}

func (s *Store) SaveReminderSettings(ctx context.Context, settings models.ReminderSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM plans WHERE id = $1", settings.PlanID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %s: %w", settings.PlanID, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := saveReminderSettings(ctx, tx, settings); err != nil {
		return err
	}
	return tx.Commit()
}

func saveReminderSettings(ctx context.Context, tx *sql.Tx, r models.ReminderSettings) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO reminder_settings (plan_id, start_hour, start_minute, end_hour, end_minute, interval_hours, message_style, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (plan_id) DO UPDATE SET
			start_hour = EXCLUDED.start_hour,
			start_minute = EXCLUDED.start_minute,
			end_hour = EXCLUDED.end_hour,
			end_minute = EXCLUDED.end_minute,
			interval_hours = EXCLUDED.interval_hours,
			message_style = EXCLUDED.message_style,
			is_active = EXCLUDED.is_active`,
		r.PlanID, r.StartHour, r.StartMinute, r.EndHour, r.EndMinute, r.IntervalHours, string(r.MessageStyle), r.IsActive,
	)
	if err != nil {
		return fmt.Errorf("saving reminder settings: %w", err)
	}
	return nil
}
