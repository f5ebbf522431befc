package track

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage/sqlite"
)

func setupTestPlan(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	doc, err := models.NewPlanDocument([]string{"W1", "W2"}, map[string][]models.Task{
		"W1": {{Description: "read ch1"}, {Description: "read ch2"}},
		"W2": {{Description: "mock exam"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	payload, _ := models.NewSubmitPayload("Biology", "20261201", "", doc)
	plan, err := store.AddPlan(context.Background(), payload)
	if err != nil {
		t.Fatalf("AddPlan() error = %v", err)
	}

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, out, plan.ID
}

func TestTrackCommands(t *testing.T) {
	ctx, out, planID := setupTestPlan(t)

	steps := []struct {
		name string
		run  func() error
		want string
	}{
		{"show", func() error { return (&ShowCmd{Plan: planID}).Run(ctx) }, "read ch1"},
		{"next", func() error { return (&NextCmd{Plan: planID}).Run(ctx) }, "read ch2"},
		{"next wraps weeks", func() error { return (&NextCmd{Plan: planID}).Run(ctx) }, "mock exam"},
		{"week prev", func() error { return (&WeekCmd{Direction: "prev", Plan: planID}).Run(ctx) }, "W1, task 1 of 2"},
		{"prev", func() error { return (&PrevCmd{Plan: planID}).Run(ctx) }, "mock exam"},
		{"done", func() error { return (&DoneCmd{Plan: planID}).Run(ctx) }, "[x] mock exam"},
		{"refresh", func() error { return (&RefreshCmd{Plan: planID}).Run(ctx) }, "1/3 tasks done (33%)"},
	}

	for _, s := range steps {
		out.Reset()
		if err := s.run(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if !strings.Contains(out.String(), s.want) {
			t.Errorf("%s: output missing %q:\n%s", s.name, s.want, out.String())
		}
	}
}
