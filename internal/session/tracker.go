// Package session coordinates the core engines with the plan store. It is the
// explicit hand-off point between tracking and editing screens.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/cursor"
	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/progress"
	"github.com/su2708/studyplan/internal/storage"
)

// ErrNoCurrentTask is returned when toggling while the cursor sits on an empty week
var ErrNoCurrentTask = errors.New("no task selected")

// Tracker walks a stored plan and records completion through the store.
// The store's copy of the plan always wins: every write is followed by a
// full re-fetch and a cursor resync.
type Tracker struct {
	store  storage.Provider
	plan   models.StudyPlan
	cursor *cursor.Cursor
}

// OpenTracker loads a plan and restores the last saved cursor position
func OpenTracker(ctx context.Context, store storage.Provider, planID string) (*Tracker, error) {
	plan, err := store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	var c *cursor.Cursor
	pos, err := store.GetCursorPosition(ctx, planID)
	switch {
	case err == nil:
		c, err = cursor.Restore(plan.Document, cursor.Position{Week: pos.Week, Index: pos.TaskIndex})
	case errors.Is(err, storage.ErrNotFound):
		c, err = cursor.New(plan.Document)
	}
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", planID, err)
	}

	return &Tracker{store: store, plan: plan, cursor: c}, nil
}

func (t *Tracker) Plan() models.StudyPlan {
	return t.plan
}

// Current returns the cursor position and the task under it
func (t *Tracker) Current() (cursor.Position, models.Task, bool) {
	return t.cursor.Current()
}

func (t *Tracker) Status() progress.Summary {
	return progress.Summarize(t.plan.Document)
}

func (t *Tracker) Next(ctx context.Context) (models.Task, error) {
	return t.advance(ctx, cursor.Next)
}

func (t *Tracker) Previous(ctx context.Context) (models.Task, error) {
	return t.advance(ctx, cursor.Previous)
}

func (t *Tracker) advance(ctx context.Context, dir cursor.Direction) (models.Task, error) {
	task, err := t.cursor.Advance(dir)
	if err != nil {
		return models.Task{}, err
	}
	return task, t.savePosition(ctx)
}

func (t *Tracker) NextWeek(ctx context.Context) error {
	return t.setWeek(ctx, cursor.Next)
}

func (t *Tracker) PreviousWeek(ctx context.Context) error {
	return t.setWeek(ctx, cursor.Previous)
}

func (t *Tracker) setWeek(ctx context.Context, dir cursor.Direction) error {
	if err := t.cursor.SetWeek(dir); err != nil {
		return err
	}
	return t.savePosition(ctx)
}

// ToggleCurrent flips the completion of the task under the cursor and reloads the plan
func (t *Tracker) ToggleCurrent(ctx context.Context) error {
	pos, _, ok := t.cursor.Current()
	if !ok {
		return ErrNoCurrentTask
	}
	toggle := models.CompletionToggle{Week: pos.Week, TaskIdx: pos.Index}
	if err := t.store.ApplyCompletionToggle(ctx, t.plan.ID, toggle); err != nil {
		return fmt.Errorf("toggling %s[%d]: %w", pos.Week, pos.Index, err)
	}
	return t.Refresh(ctx)
}

// Refresh re-fetches the plan and resyncs the cursor against it
func (t *Tracker) Refresh(ctx context.Context) error {
	plan, err := t.store.GetPlan(ctx, t.plan.ID)
	if err != nil {
		return err
	}
	if err := t.cursor.Resync(plan.Document); err != nil {
		// keep the fetched plan so Status matches what is stored
		t.plan = plan
		return fmt.Errorf("plan %s: %w", plan.ID, err)
	}
	if plan.Revision < t.plan.Revision {
		logger.Warn("plan revision went backwards", "plan", plan.ID, "had", t.plan.Revision, "got", plan.Revision)
	}
	t.plan = plan
	return t.savePosition(ctx)
}

// Finish turns a fully completed plan into an achievement
func (t *Tracker) Finish(ctx context.Context) (models.Achievement, error) {
	if err := storage.CheckComplete(t.plan.Document); err != nil {
		return models.Achievement{}, err
	}
	return t.store.CompletePlan(ctx, t.plan.ID)
}

func (t *Tracker) savePosition(ctx context.Context) error {
	pos := t.cursor.Position()
	err := t.store.SaveCursorPosition(ctx, models.CursorPosition{
		PlanID:    t.plan.ID,
		Week:      pos.Week,
		TaskIndex: pos.Index,
	})
	if err != nil {
		return err
	}
	logger.Debug("cursor saved", "plan", t.plan.ID, "week", pos.Week, "index", pos.Index)
	return nil
}
