package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
)

func (s *Store) GetCursorPosition(ctx context.Context, planID string) (models.CursorPosition, error) {
	pos := models.CursorPosition{PlanID: planID}
	err := s.db.QueryRowContext(ctx,
		"SELECT week, task_index FROM cursors WHERE plan_id = ?", planID,
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
		INSERT INTO cursors (plan_id, week, task_index) VALUES (?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET week = excluded.week, task_index = excluded.task_index`,
		pos.PlanID, pos.Week, pos.TaskIndex,
	)
	if err != nil {
		return fmt.Errorf("saving cursor position: %w", err)
	}
	return nil
}
