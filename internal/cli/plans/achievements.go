package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/session"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/internal/utils"
)

// FinishCmd turns a fully completed plan into an achievement
type FinishCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *FinishCmd) Run(ctx *cli.Context) error {
	tr, err := session.OpenTracker(context.Background(), ctx.Store, c.Plan)
	if err != nil {
		return err
	}
	a, err := tr.Finish(context.Background())
	if errors.Is(err, storage.ErrPlanNotComplete) {
		return fmt.Errorf("%w: %s", err, cli.ProgressLine(tr.Status()))
	}
	if err != nil {
		return err
	}
	ctx.Printf("Congratulations! %s is complete.\n", a.TestName)
	return nil
}

type AchievementsCmd struct {
	Format string `enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	achievements, err := ctx.Store.ListAchievements(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list achievements: %w", err)
	}
	if c.Format != cli.FormatText {
		return cli.Encode(ctx.Writer(), c.Format, achievements)
	}
	if len(achievements) == 0 {
		ctx.Println("No achievements yet")
		return nil
	}

	ctx.Println("Achievements:")
	for _, a := range achievements {
		ctx.Printf("  %s  %s at %s (test %s)\n",
			a.CreatedAt.Local().Format(constants.DateFormat), a.TestName, a.TestPlace, utils.FormatCompactDate(a.TestDate))
	}
	return nil
}
