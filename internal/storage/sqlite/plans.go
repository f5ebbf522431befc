package sqlite

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

const planColumns = "id, name, test_date, place, test_plan, on_progress, revision, created_at, updated_at"

// AddPlan stores a submitted plan together with its default reminder settings
func (s *Store) AddPlan(ctx context.Context, payload models.SubmitPayload) (models.StudyPlan, error) {
	doc, err := payload.Document()
	if err != nil {
		return models.StudyPlan{}, err
	}
	data, err := storage.EncodeDocument(doc)
	if err != nil {
		return models.StudyPlan{}, err
	}

	now := time.Now().UTC()
	plan := models.StudyPlan{
		ID:         uuid.New().String(),
		Name:       payload.TestName,
		TestDate:   payload.TestDate,
		Place:      payload.TestPlace,
		Document:   doc,
		OnProgress: true,
		Revision:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.StudyPlan{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO plans ("+planColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		plan.ID, plan.Name, plan.TestDate, plan.Place, string(data), plan.OnProgress, plan.Revision,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("inserting plan: %w", err)
	}
	if err := saveReminderSettings(ctx, tx, models.DefaultReminderSettings(plan.ID)); err != nil {
		return models.StudyPlan{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.StudyPlan{}, err
	}

	logger.Info("plan created", "plan", plan.ID, "name", plan.Name, "weeks", len(doc.Weeks))
	return plan, nil
}

func (s *Store) GetPlan(ctx context.Context, id string) (models.StudyPlan, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+planColumns+" FROM plans WHERE id = ?", id)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StudyPlan{}, fmt.Errorf("plan %s: %w", id, storage.ErrNotFound)
	}
	return plan, err
}

func (s *Store) ListPlans(ctx context.Context) ([]models.StudyPlan, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+planColumns+" FROM plans ORDER BY test_date, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.StudyPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *Store) ApplyCompletionToggle(ctx context.Context, planID string, toggle models.CompletionToggle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, "SELECT test_plan FROM plans WHERE id = ?", planID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}

	next, err := storage.ToggledDocument([]byte(stored), toggle)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE plans SET test_plan = ?, revision = revision + 1, updated_at = ? WHERE id = ?",
		string(next), formatTime(time.Now()), planID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Debug("completion toggled", "plan", planID, "week", toggle.Week, "task", toggle.TaskIdx)
	return nil
}

func (s *Store) DeletePlan(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deletePlan(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deletePlan(ctx context.Context, tx *sql.Tx, id string) error {
	for _, q := range []string{
		"DELETE FROM cursors WHERE plan_id = ?",
		"DELETE FROM reminder_settings WHERE plan_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (models.StudyPlan, error) {
	var (
		plan                 models.StudyPlan
		data                 string
		createdAt, updatedAt string
	)
	err := row.Scan(&plan.ID, &plan.Name, &plan.TestDate, &plan.Place, &data,
		&plan.OnProgress, &plan.Revision, &createdAt, &updatedAt)
	if err != nil {
		return models.StudyPlan{}, err
	}
	plan.Document, err = storage.DecodeDocument([]byte(data))
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("plan %s: %w", plan.ID, err)
	}
	plan.CreatedAt = parseTime(createdAt)
	plan.UpdatedAt = parseTime(updatedAt)
	return plan, nil
}
