package session

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/internal/storage/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "studyplan.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func generatedPlan(t *testing.T) models.GeneratedPlan {
	t.Helper()
	plan := models.GeneratedPlan{BookTitle: "Algorithms", Today: "20261019", TestDay: "20261201"}
	for _, w := range []struct {
		week  string
		tasks []string
	}{
		{"week1", []string{"task1a"}},
		{"week2", []string{"task2a"}},
		{"week3", []string{"task3a"}},
	} {
		if err := plan.TotalPlan.Add(w.week, w.tasks); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return plan
}

func addPlan(t *testing.T, store storage.Provider, weeks []string, tasks map[string][]models.Task) models.StudyPlan {
	t.Helper()
	doc, err := models.NewPlanDocument(weeks, tasks)
	if err != nil {
		t.Fatalf("NewPlanDocument() error = %v", err)
	}
	payload, err := models.NewSubmitPayload("Final", "20261201", "Library", doc)
	if err != nil {
		t.Fatalf("NewSubmitPayload() error = %v", err)
	}
	plan, err := store.AddPlan(context.Background(), payload)
	if err != nil {
		t.Fatalf("AddPlan() error = %v", err)
	}
	return plan
}

func TestTrackerNavigationPersists(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	plan := addPlan(t, store, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {{Description: "a"}, {Description: "b"}},
		"W2": {{Description: "c"}},
	})

	tr, err := OpenTracker(ctx, store, plan.ID)
	if err != nil {
		t.Fatalf("OpenTracker() error = %v", err)
	}
	if _, task, _ := tr.Current(); task.Description != "a" {
		t.Fatalf("Current() = %q, want a", task.Description)
	}

	for _, want := range []string{"b", "c", "a", "b"} {
		task, err := tr.Next(ctx)
		if err != nil || task.Description != want {
			t.Fatalf("Next() = %q, %v, want %q", task.Description, err, want)
		}
	}

	reopened, err := OpenTracker(ctx, store, plan.ID)
	if err != nil {
		t.Fatalf("OpenTracker() error = %v", err)
	}
	if pos, task, _ := reopened.Current(); pos.Week != "W1" || pos.Index != 1 || task.Description != "b" {
		t.Errorf("reopened Current() = %+v %q", pos, task.Description)
	}

	if err := reopened.NextWeek(ctx); err != nil {
		t.Fatalf("NextWeek() error = %v", err)
	}
	if pos, _, _ := reopened.Current(); pos.Week != "W2" || pos.Index != 0 {
		t.Errorf("after NextWeek() Current() = %+v", pos)
	}
	if err := reopened.NextWeek(ctx); err != nil {
		t.Fatalf("NextWeek() at last week error = %v", err)
	}
	if err := reopened.PreviousWeek(ctx); err != nil {
		t.Fatalf("PreviousWeek() error = %v", err)
	}
	if task, _ := reopened.Previous(ctx); task.Description != "c" {
		t.Errorf("Previous() = %q, want c", task.Description)
	}
}

func TestTrackerToggleRefetches(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	plan := addPlan(t, store, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {{Description: "a"}},
		"W2": {{Description: "b"}},
	})

	tr, err := OpenTracker(ctx, store, plan.ID)
	if err != nil {
		t.Fatalf("OpenTracker() error = %v", err)
	}

	if err := tr.ToggleCurrent(ctx); err != nil {
		t.Fatalf("ToggleCurrent() error = %v", err)
	}
	if _, task, _ := tr.Current(); !task.IsDone {
		t.Error("current task not done after toggle")
	}
	if tr.Plan().Revision != 2 {
		t.Errorf("Revision = %d, want 2", tr.Plan().Revision)
	}
	if s := tr.Status(); s.Completed != 1 || s.Percent != 50 {
		t.Errorf("Status() = %+v", s)
	}

	if _, err := tr.Finish(ctx); !errors.Is(err, storage.ErrPlanNotComplete) {
		t.Fatalf("Finish() error = %v, want %v", err, storage.ErrPlanNotComplete)
	}

	if _, err := tr.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if err := tr.ToggleCurrent(ctx); err != nil {
		t.Fatalf("ToggleCurrent() error = %v", err)
	}

	a, err := tr.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if a.PlanID != plan.ID {
		t.Errorf("Finish() = %+v", a)
	}
	if _, err := OpenTracker(ctx, store, plan.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("OpenTracker() after finish error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestTrackerRefreshSeesExternalWrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	plan := addPlan(t, store, []string{"W1"}, map[string][]models.Task{
		"W1": {{Description: "a"}, {Description: "b"}},
	})

	tr, _ := OpenTracker(ctx, store, plan.ID)
	if err := store.ApplyCompletionToggle(ctx, plan.ID, models.CompletionToggle{Week: "W1", TaskIdx: 1}); err != nil {
		t.Fatalf("ApplyCompletionToggle() error = %v", err)
	}
	if tr.Status().Completed != 0 {
		t.Fatal("tracker saw write before refresh")
	}
	if err := tr.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if tr.Status().Completed != 1 {
		t.Errorf("Status().Completed = %d, want 1", tr.Status().Completed)
	}
}

// emptiedStore serves every plan with its tasks removed
type emptiedStore struct {
	storage.Provider
}

func (s emptiedStore) GetPlan(ctx context.Context, id string) (models.StudyPlan, error) {
	plan, err := s.Provider.GetPlan(ctx, id)
	if err != nil {
		return plan, err
	}
	plan.Document, err = models.NewPlanDocument(plan.Document.Weeks, nil)
	return plan, err
}

func TestTrackerRefreshEmptiedPlan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	plan := addPlan(t, store, []string{"W1"}, map[string][]models.Task{
		"W1": {{Description: "a"}, {Description: "b"}},
	})

	tr, err := OpenTracker(ctx, store, plan.ID)
	if err != nil {
		t.Fatalf("OpenTracker() error = %v", err)
	}
	tr.store = emptiedStore{Provider: store}

	if err := tr.Refresh(ctx); !errors.Is(err, models.ErrEmptyPlan) {
		t.Fatalf("Refresh() error = %v, want %v", err, models.ErrEmptyPlan)
	}
	if got := tr.Status().Total; got != 0 {
		t.Errorf("Status().Total = %d, want 0", got)
	}
}

func TestTrackerEmptyWeek(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	plan := addPlan(t, store, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {{Description: "a"}},
	})

	tr, _ := OpenTracker(ctx, store, plan.ID)
	if err := tr.NextWeek(ctx); err != nil {
		t.Fatalf("NextWeek() error = %v", err)
	}
	if err := tr.ToggleCurrent(ctx); !errors.Is(err, ErrNoCurrentTask) {
		t.Errorf("ToggleCurrent() error = %v, want %v", err, ErrNoCurrentTask)
	}
}

func TestEditorMoveAndSubmit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ed, err := StartDraft(ctx, store, generatedPlan(t))
	if err != nil {
		t.Fatalf("StartDraft() error = %v", err)
	}
	draftID := ed.Draft().ID

	if ok, err := ed.Move(ctx, "week-1", "week-2"); ok || err != nil {
		t.Errorf("Move(week-1) = %v, %v, want rejected", ok, err)
	}
	if ok, err := ed.Move(ctx, "week-2", "week-3"); !ok || err != nil {
		t.Fatalf("Move(week-2, week-3) = %v, %v", ok, err)
	}

	resumed, err := OpenEditor(ctx, store, draftID, WithStrictViews())
	if err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	if !reflect.DeepEqual(resumed.View().Items(), ed.View().Items()) {
		t.Error("resumed draft lost the move")
	}

	plan, err := resumed.Submit(ctx, "Algorithms final", "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if want := []string{"week1", "week3", "week2"}; !reflect.DeepEqual(plan.Document.Weeks, want) {
		t.Errorf("submitted weeks = %v, want %v", plan.Document.Weeks, want)
	}
	if plan.TestDate != "20261201" {
		t.Errorf("TestDate = %q", plan.TestDate)
	}
	if _, err := store.GetReminderSettings(ctx, plan.ID); err != nil {
		t.Errorf("GetReminderSettings() error = %v", err)
	}
	if _, err := store.GetDraft(ctx, draftID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetDraft() after submit error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestEditorSubmitRequiresName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ed, _ := StartDraft(ctx, store, generatedPlan(t))
	if _, err := ed.Submit(ctx, "  ", ""); !errors.Is(err, models.ErrInvalidPlan) {
		t.Errorf("Submit() error = %v, want %v", err, models.ErrInvalidPlan)
	}
	if _, err := store.GetDraft(ctx, ed.Draft().ID); err != nil {
		t.Errorf("draft removed after failed submit: %v", err)
	}
}

func TestStartDraftRejectsInvalidPlan(t *testing.T) {
	store := setupTestStore(t)
	plan := generatedPlan(t)
	plan.TestDay = "next week"

	if _, err := StartDraft(context.Background(), store, plan); !errors.Is(err, models.ErrInvalidPlan) {
		t.Errorf("StartDraft() error = %v, want %v", err, models.ErrInvalidPlan)
	}
}

func TestEditorDiscard(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ed, _ := StartDraft(ctx, store, generatedPlan(t))
	if err := ed.Discard(ctx); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if _, err := OpenEditor(ctx, store, ed.Draft().ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("OpenEditor() after discard error = %v, want %v", err, storage.ErrNotFound)
	}
}
