package plans

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func addPlan(t *testing.T, ctx *cli.Context) models.StudyPlan {
	t.Helper()
	doc, err := models.NewPlanDocument([]string{"week2", "week1"}, map[string][]models.Task{
		"week2": {{Description: "review"}},
		"week1": {{Description: "read"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	payload, err := models.NewSubmitPayload("Physics", "20261201", "Room 4", doc)
	if err != nil {
		t.Fatal(err)
	}
	plan, err := ctx.Store.AddPlan(context.Background(), payload)
	if err != nil {
		t.Fatalf("AddPlan() error = %v", err)
	}
	return plan
}

func TestShowCmd_Formats(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()
	plan := addPlan(t, ctx)

	t.Run("json", func(t *testing.T) {
		out.Reset()
		if err := (&ShowCmd{Plan: plan.ID, Format: cli.FormatJSON}).Run(ctx); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		var got planOutput
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out.String())
		}
		if strings.Join(got.TestPlan.TotalPlan.Weeks, ",") != "week2,week1" {
			t.Errorf("weeks = %v, want stored order", got.TestPlan.TotalPlan.Weeks)
		}
		if got.TestName != "Physics" {
			t.Errorf("TestName = %q", got.TestName)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out.Reset()
		if err := (&ShowCmd{Plan: plan.ID, Format: cli.FormatYAML}).Run(ctx); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		var got planOutput
		if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, out.String())
		}
		if strings.Join(got.TestPlan.TotalPlan.Weeks, ",") != "week2,week1" {
			t.Errorf("weeks = %v, want stored order", got.TestPlan.TotalPlan.Weeks)
		}
	})

	t.Run("text", func(t *testing.T) {
		out.Reset()
		if err := (&ShowCmd{Plan: plan.ID, Format: cli.FormatText}).Run(ctx); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(out.String(), "0/2 tasks done (0%)") {
			t.Errorf("missing progress line:\n%s", out.String())
		}
	})
}

func TestDeleteCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()
	plan := addPlan(t, ctx)

	if err := (&DeleteCmd{Plan: plan.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetPlan(context.Background(), plan.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetPlan() after delete error = %v", err)
	}
	if err := (&DeleteCmd{Plan: plan.ID, Yes: true}).Run(ctx); err == nil {
		t.Error("deleting a missing plan should fail")
	}
}

func TestFinishCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()
	plan := addPlan(t, ctx)

	if err := (&FinishCmd{Plan: plan.ID}).Run(ctx); !errors.Is(err, storage.ErrPlanNotComplete) {
		t.Fatalf("finish error = %v, want %v", err, storage.ErrPlanNotComplete)
	}

	for _, week := range []string{"week1", "week2"} {
		toggle := models.CompletionToggle{Week: week, TaskIdx: 0}
		if err := ctx.Store.ApplyCompletionToggle(context.Background(), plan.ID, toggle); err != nil {
			t.Fatal(err)
		}
	}
	if err := (&FinishCmd{Plan: plan.ID}).Run(ctx); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	out.Reset()
	if err := (&AchievementsCmd{Format: cli.FormatText}).Run(ctx); err != nil {
		t.Fatalf("achievements failed: %v", err)
	}
	if !strings.Contains(out.String(), "Physics at Room 4") {
		t.Errorf("achievement not listed:\n%s", out.String())
	}
}

func TestListCmd_Empty(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No plans found") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
