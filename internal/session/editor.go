package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/reorder"
	"github.com/su2708/studyplan/internal/storage"
)

// Editor reorders a draft plan and submits it. Every accepted move is saved
// so an edit can continue in a later invocation.
type Editor struct {
	store  storage.Provider
	draft  models.Draft
	engine *reorder.Engine
	strict bool
}

type EditorOption func(*Editor)

// WithStrictViews makes Submit fail on a malformed view instead of falling
// back to the last good plan.
func WithStrictViews() EditorOption {
	return func(e *Editor) { e.strict = true }
}

// StartDraft stores a generated plan as a new draft and opens it
func StartDraft(ctx context.Context, store storage.Provider, plan models.GeneratedPlan, opts ...EditorOption) (*Editor, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	draft := models.Draft{
		ID:        uuid.New().String(),
		BookTitle: plan.BookTitle,
		TestDay:   plan.TestDay,
		Today:     plan.Today,
		Items:     reorder.FromGenerated(plan).Items(),
	}
	if err := store.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	logger.Info("draft created", "draft", draft.ID, "title", draft.BookTitle)
	return newEditor(store, draft, opts)
}

// OpenEditor resumes a stored draft
func OpenEditor(ctx context.Context, store storage.Provider, draftID string, opts ...EditorOption) (*Editor, error) {
	draft, err := store.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return newEditor(store, draft, opts)
}

func newEditor(store storage.Provider, draft models.Draft, opts []EditorOption) (*Editor, error) {
	e := &Editor{store: store, draft: draft}
	for _, opt := range opts {
		opt(e)
	}
	view := reorder.NewView(draft.Items)
	if err := view.Validate(); err != nil {
		return nil, fmt.Errorf("draft %s: %w", draft.ID, err)
	}
	e.engine = reorder.NewEngine(view, e.strict)
	return e, nil
}

func (e *Editor) Draft() models.Draft {
	return e.draft
}

func (e *Editor) View() reorder.View {
	return e.engine.View()
}

// Move applies one drag-and-drop move. Rejected moves are not errors.
func (e *Editor) Move(ctx context.Context, sourceID, targetID string) (bool, error) {
	if !e.engine.Move(sourceID, targetID) {
		return false, nil
	}
	draft := e.draft
	draft.Items = e.engine.View().Items()
	if err := e.store.SaveDraft(ctx, draft); err != nil {
		return true, err
	}
	e.draft = draft
	return true, nil
}

// Submit turns the edited draft into a tracked plan and removes the draft
func (e *Editor) Submit(ctx context.Context, name, place string) (models.StudyPlan, error) {
	doc, err := e.engine.Commit()
	if err != nil {
		return models.StudyPlan{}, fmt.Errorf("draft %s: %w", e.draft.ID, err)
	}
	payload, err := models.NewSubmitPayload(name, e.draft.TestDay, place, doc)
	if err != nil {
		return models.StudyPlan{}, err
	}
	plan, err := e.store.AddPlan(ctx, payload)
	if err != nil {
		return models.StudyPlan{}, err
	}
	if err := e.store.DeleteDraft(ctx, e.draft.ID); err != nil {
		logger.Warn("submitted draft could not be removed", "draft", e.draft.ID, "err", err)
	}
	return plan, nil
}

// Discard deletes the draft without submitting it
func (e *Editor) Discard(ctx context.Context) error {
	return e.store.DeleteDraft(ctx, e.draft.ID)
}
