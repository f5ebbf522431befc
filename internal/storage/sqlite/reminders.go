package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
)

func (s *Store) GetReminderSettings(ctx context.Context, planID string) (models.ReminderSettings, error) {
	r := models.ReminderSettings{PlanID: planID}
	var style string
	err := s.db.QueryRowContext(ctx, `
		SELECT start_hour, start_minute, end_hour, end_minute, interval_hours, message_style, is_active
		FROM reminder_settings WHERE plan_id = ?`, planID,
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
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM plans WHERE id = ?", settings.PlanID).Scan(&exists)
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			start_hour = excluded.start_hour,
			start_minute = excluded.start_minute,
			end_hour = excluded.end_hour,
			end_minute = excluded.end_minute,
			interval_hours = excluded.interval_hours,
			message_style = excluded.message_style,
			is_active = excluded.is_active`,
		r.PlanID, r.StartHour, r.StartMinute, r.EndHour, r.EndMinute, r.IntervalHours, string(r.MessageStyle), r.IsActive,
	)
	if err != nil {
		return fmt.Errorf("saving reminder settings: %w", err)
	}
	return nil
}
