package progress

import (
	"errors"
	"math"
	"testing"

	"github.com/su2708/studyplan/internal/models"
)

func mustDoc(t *testing.T, weeks []string, tasks map[string][]models.Task) models.PlanDocument {
	t.Helper()
	doc, err := models.NewPlanDocument(weeks, tasks)
	if err != nil {
		t.Fatalf("NewPlanDocument() error = %v", err)
	}
	return doc
}

func done(desc string) models.Task    { return models.Task{Description: desc, IsDone: true} }
func pending(desc string) models.Task { return models.Task{Description: desc} }

func TestOverallProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		weeks []string
		tasks map[string][]models.Task
		want  int
	}{
		{
			name:  "no tasks",
			weeks: []string{"W1"},
			want:  0,
		},
		{
			name:  "one of three rounds down",
			weeks: []string{"W1", "W2"},
			tasks: map[string][]models.Task{"W1": {done("a"), pending("b")}, "W2": {pending("c")}},
			want:  33,
		},
		{
			name:  "two of three rounds up",
			weeks: []string{"W1", "W2"},
			tasks: map[string][]models.Task{"W1": {done("a"), done("b")}, "W2": {pending("c")}},
			want:  67,
		},
		{
			name:  "half",
			weeks: []string{"W1"},
			tasks: map[string][]models.Task{"W1": {done("a"), pending("b")}},
			want:  50,
		},
		{
			name:  "all done",
			weeks: []string{"W1", "W2"},
			tasks: map[string][]models.Task{"W1": {done("a")}, "W2": {done("b")}},
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.weeks, tt.tasks)
			got := OverallProgressPercent(doc)
			if got != tt.want {
				t.Errorf("OverallProgressPercent() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("OverallProgressPercent() = %d out of range", got)
			}
			if total := TotalTaskCount(doc); total > 0 {
				want := int(math.Round(100 * float64(CompletedTaskCount(doc)) / float64(total)))
				if got != want {
					t.Errorf("OverallProgressPercent() = %d, want %d from counts", got, want)
				}
			}
		})
	}
}

func TestWeekProgress(t *testing.T) {
	doc := mustDoc(t, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {done("a"), pending("b"), done("c")},
	})

	got, err := WeekProgress(doc, "W1")
	if err != nil {
		t.Fatalf("WeekProgress() error = %v", err)
	}
	if got != (WeekStats{Completed: 2, Total: 3}) {
		t.Errorf("WeekProgress(W1) = %+v", got)
	}

	got, err = WeekProgress(doc, "W2")
	if err != nil || got != (WeekStats{}) {
		t.Errorf("WeekProgress(W2) = %+v, %v", got, err)
	}

	if _, err := WeekProgress(doc, "W9"); !errors.Is(err, models.ErrUnknownWeek) {
		t.Errorf("WeekProgress(W9) error = %v, want %v", err, models.ErrUnknownWeek)
	}
}

func TestIsPlanFullyComplete(t *testing.T) {
	doc := mustDoc(t, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {done("a"), done("b")},
		"W2": {done("c")},
	})
	if !IsPlanFullyComplete(doc) {
		t.Fatal("IsPlanFullyComplete() = false for all-done plan")
	}

	for _, week := range doc.Weeks {
		for i := range doc.Tasks(week) {
			flipped, err := doc.WithTaskToggled(week, i)
			if err != nil {
				t.Fatalf("WithTaskToggled() error = %v", err)
			}
			if IsPlanFullyComplete(flipped) {
				t.Errorf("IsPlanFullyComplete() = true after undoing %s[%d]", week, i)
			}
		}
	}
}

func TestSummarizeAnomalous(t *testing.T) {
	empty := mustDoc(t, []string{"W1", "W2"}, nil)
	s := Summarize(empty)
	if !s.Anomalous() {
		t.Error("Anomalous() = false for zero-task plan")
	}
	if !IsPlanFullyComplete(empty) {
		t.Error("IsPlanFullyComplete() should be vacuously true")
	}
	if s.Percent != 0 {
		t.Errorf("Percent = %d, want 0", s.Percent)
	}
}

func TestSummarize(t *testing.T) {
	doc := mustDoc(t, []string{"W1", "W2"}, map[string][]models.Task{
		"W1": {done("a"), pending("b")},
		"W2": {done("c"), done("d")},
	})
	s := Summarize(doc)
	if s.Completed != 3 || s.Total != 4 || s.Percent != 75 {
		t.Errorf("Summarize() = %+v", s)
	}
	if len(s.Weeks) != 2 || s.Weeks[0].Week != "W1" || s.Weeks[1].Completed != 2 {
		t.Errorf("Summarize().Weeks = %+v", s.Weeks)
	}
	if s.Anomalous() {
		t.Error("Anomalous() = true for populated plan")
	}
}
