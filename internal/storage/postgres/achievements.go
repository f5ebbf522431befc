package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
)

// CompletePlan records the achievement and drops the plan; cursors and
// reminder settings go with it through ON DELETE CASCADE.
func (s *Store) CompletePlan(ctx context.Context, planID string) (models.Achievement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Achievement{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+planColumns+" FROM plans WHERE id = $1 FOR UPDATE", planID)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Achievement{}, fmt.Errorf("plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Achievement{}, err
	}
	if err := storage.CheckComplete(plan.Document); err != nil {
		return models.Achievement{}, fmt.Errorf("plan %s: %w", planID, err)
	}

	a := models.Achievement{
		ID:        uuid.New().String(),
		PlanID:    plan.ID,
		TestName:  plan.Name,
		TestDate:  plan.TestDate,
		TestPlace: plan.Place,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO achievements (id, plan_id, test_name, test_date, test_place, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		a.ID, a.PlanID, a.TestName, a.TestDate, a.TestPlace, a.CreatedAt,
	)
	if err != nil {
		return models.Achievement{}, fmt.Errorf("recording achievement: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM plans WHERE id = $1", planID); err != nil {
		return models.Achievement{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Achievement{}, err
	}

	logger.Info("plan finished", "plan", planID, "achievement", a.ID)
	return a, nil
}

func (s *Store) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, plan_id, test_name, test_date, test_place, created_at FROM achievements ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.PlanID, &a.TestName, &a.TestDate, &a.TestPlace, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
