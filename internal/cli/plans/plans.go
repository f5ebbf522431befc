package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/progress"
	"github.com/su2708/studyplan/internal/utils"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Store.ListPlans(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		ctx.Println("No plans found. Import a generated plan with 'studyplan draft import'.")
		return nil
	}

	now := time.Now()
	ctx.Println("Plans:")
	for _, p := range plans {
		ctx.Printf("  %s  %s - %d%% done, %s\n",
			p.ID, p.Name, progress.OverallProgressPercent(p.Document), countdown(p.TestDate, now))
	}
	return nil
}

func countdown(testDate string, now time.Time) string {
	days, err := utils.DaysRemaining(testDate, now)
	switch {
	case err != nil:
		return "test date unknown"
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	case days == 0:
		return "test day"
	default:
		return fmt.Sprintf("test was %d day(s) ago", -days)
	}
}

type ShowCmd struct {
	Plan   string `arg:"" help:"Plan ID."`
	Format string `enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)."`
}

// planOutput is the machine-readable form of a plan
type planOutput struct {
	ID         string          `json:"id" yaml:"id"`
	TestName   string          `json:"test_name" yaml:"test_name"`
	TestDate   string          `json:"test_date" yaml:"test_date"`
	TestPlace  string          `json:"test_place" yaml:"test_place"`
	OnProgress bool            `json:"on_progress" yaml:"on_progress"`
	Revision   int             `json:"revision" yaml:"revision"`
	Progress   int             `json:"progress" yaml:"progress"`
	TestPlan   models.TestPlan `json:"test_plan" yaml:"test_plan"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Store.GetPlan(context.Background(), c.Plan)
	if err != nil {
		return err
	}

	if c.Format != cli.FormatText {
		out := planOutput{
			ID:         plan.ID,
			TestName:   plan.Name,
			TestDate:   plan.TestDate,
			TestPlace:  plan.Place,
			OnProgress: plan.OnProgress,
			Revision:   plan.Revision,
			Progress:   progress.OverallProgressPercent(plan.Document),
			TestPlan:   models.SnapshotFromDocument(plan.Document).TestPlan,
		}
		return cli.Encode(ctx.Writer(), c.Format, out)
	}

	ctx.Printf("%s at %s on %s (%s)\n", plan.Name, plan.Place,
		utils.FormatCompactDate(plan.TestDate), countdown(plan.TestDate, time.Now()))
	ctx.Println(cli.ProgressLine(progress.Summarize(plan.Document)))
	ctx.Println()
	cli.PrintDocument(ctx.Writer(), plan.Document)
	return nil
}

type DeleteCmd struct {
	Plan string `arg:"" help:"Plan ID."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Store.GetPlan(context.Background(), c.Plan)
	if err != nil {
		return fmt.Errorf("failed to find plan %s: %w", c.Plan, err)
	}

	ok, err := cli.Confirm(fmt.Sprintf("Delete plan %q and its progress?", plan.Name), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled")
		return nil
	}
	if err := ctx.Store.DeletePlan(context.Background(), plan.ID); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	ctx.Printf("Deleted plan: %s\n", plan.ID)
	return nil
}
