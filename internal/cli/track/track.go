package track

import (
	"context"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/cursor"
	"github.com/su2708/studyplan/internal/session"
)

// ShowCmd prints the task under the saved cursor
type ShowCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	tr, err := session.OpenTracker(context.Background(), ctx.Store, c.Plan)
	if err != nil {
		return err
	}
	printCurrent(ctx, tr)
	return nil
}

type NextCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *NextCmd) Run(ctx *cli.Context) error {
	return step(ctx, c.Plan, cursor.Next)
}

type PrevCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *PrevCmd) Run(ctx *cli.Context) error {
	return step(ctx, c.Plan, cursor.Previous)
}

func step(ctx *cli.Context, planID string, dir cursor.Direction) error {
	tr, err := session.OpenTracker(context.Background(), ctx.Store, planID)
	if err != nil {
		return err
	}
	if dir == cursor.Next {
		_, err = tr.Next(context.Background())
	} else {
		_, err = tr.Previous(context.Background())
	}
	if err != nil {
		return err
	}
	printCurrent(ctx, tr)
	return nil
}

// WeekCmd jumps to the adjacent week
type WeekCmd struct {
	Direction string `arg:"" enum:"next,prev" help:"Which week to jump to (next or prev)."`
	Plan      string `arg:"" help:"Plan ID."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	dir, err := cursor.ParseDirection(c.Direction)
	if err != nil {
		return err
	}
	tr, err := session.OpenTracker(context.Background(), ctx.Store, c.Plan)
	if err != nil {
		return err
	}
	if dir == cursor.Next {
		err = tr.NextWeek(context.Background())
	} else {
		err = tr.PreviousWeek(context.Background())
	}
	if err != nil {
		return err
	}
	printCurrent(ctx, tr)
	return nil
}

// DoneCmd toggles the completion of the current task
type DoneCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	tr, err := session.OpenTracker(context.Background(), ctx.Store, c.Plan)
	if err != nil {
		return err
	}
	if err := tr.ToggleCurrent(context.Background()); err != nil {
		return err
	}
	printCurrent(ctx, tr)
	if s := tr.Status(); !s.Anomalous() && s.Completed == s.Total {
		ctx.Printf("\nEvery task is done. Run 'studyplan finish %s' to record the achievement.\n", c.Plan)
	}
	return nil
}

// RefreshCmd re-reads the plan and re-validates the saved cursor
type RefreshCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *RefreshCmd) Run(ctx *cli.Context) error {
	tr, err := session.OpenTracker(context.Background(), ctx.Store, c.Plan)
	if err != nil {
		return err
	}
	if err := tr.Refresh(context.Background()); err != nil {
		return err
	}
	printCurrent(ctx, tr)
	return nil
}

func printCurrent(ctx *cli.Context, tr *session.Tracker) {
	plan := tr.Plan()
	pos, task, ok := tr.Current()
	weekTasks := len(plan.Document.Tasks(pos.Week))

	ctx.Printf("%s - %s\n", plan.Name, cli.ProgressLine(tr.Status()))
	if !ok {
		ctx.Printf("%s: no tasks this week\n", pos.Week)
		return
	}
	ctx.Printf("%s, task %d of %d\n", pos.Week, pos.Index+1, weekTasks)
	ctx.Printf("  %s %s\n", cli.Checkbox(task.IsDone), task.Description)
}
