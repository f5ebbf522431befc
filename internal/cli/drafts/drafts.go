package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/reorder"
	"github.com/su2708/studyplan/internal/session"
	"github.com/su2708/studyplan/internal/utils"
)

// ImportCmd loads a generated plan from a JSON or YAML file into a new draft
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Generated plan file (.json, .yaml or .yml)."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}
	plan, err := decodeGeneratedPlan(data, cli.IsYAMLFile(c.File))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", c.File, err)
	}
	if plan.Today == "" {
		plan.Today = utils.TodayCompact(time.Now())
	}

	ed, err := session.StartDraft(context.Background(), ctx.Store, plan)
	if err != nil {
		return err
	}
	ctx.Printf("Created draft %s for %q\n\n", ed.Draft().ID, plan.BookTitle)
	printView(ctx.Writer(), ed.View())
	return nil
}

func decodeGeneratedPlan(data []byte, isYAML bool) (models.GeneratedPlan, error) {
	var plan models.GeneratedPlan
	if isYAML {
		err := yaml.Unmarshal(data, &plan)
		return plan, err
	}
	err := json.Unmarshal(data, &plan)
	return plan, err
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	drafts, err := ctx.Store.ListDrafts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}
	if len(drafts) == 0 {
		ctx.Println("No drafts found")
		return nil
	}

	ctx.Println("Drafts:")
	for _, d := range drafts {
		ctx.Printf("  %s  %s (test %s, updated %s)\n",
			d.ID, d.BookTitle, utils.FormatCompactDate(d.TestDay), d.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

type ShowCmd struct {
	Draft string `arg:"" help:"Draft ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	ed, err := session.OpenEditor(context.Background(), ctx.Store, c.Draft)
	if err != nil {
		return err
	}
	d := ed.Draft()
	ctx.Printf("%s (test %s)\n\n", d.BookTitle, utils.FormatCompactDate(d.TestDay))
	printView(ctx.Writer(), ed.View())
	return nil
}

// MoveCmd drops one item of the flattened plan onto another
type MoveCmd struct {
	Draft  string `arg:"" help:"Draft ID."`
	Source string `arg:"" help:"ID of the item to move (see 'draft show')."`
	Target string `arg:"" help:"ID of the item to drop it on."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	ed, err := session.OpenEditor(context.Background(), ctx.Store, c.Draft)
	if err != nil {
		return err
	}
	moved, err := ed.Move(context.Background(), c.Source, c.Target)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if !moved {
		ctx.Printf("Move of %s onto %s was rejected; the plan is unchanged.\n", c.Source, c.Target)
		return nil
	}
	printView(ctx.Writer(), ed.View())
	return nil
}

type SubmitCmd struct {
	Draft  string `arg:"" help:"Draft ID."`
	Name   string `required:"" help:"Name of the test the plan prepares for."`
	Place  string `help:"Where the test takes place."`
	Strict bool   `help:"Fail instead of submitting the last valid plan when the draft is malformed."`
}

func (c *SubmitCmd) Run(ctx *cli.Context) error {
	var opts []session.EditorOption
	if c.Strict {
		opts = append(opts, session.WithStrictViews())
	}
	ed, err := session.OpenEditor(context.Background(), ctx.Store, c.Draft, opts...)
	if err != nil {
		return err
	}
	plan, err := ed.Submit(context.Background(), c.Name, c.Place)
	if err != nil {
		return err
	}
	ctx.Printf("Submitted plan %s: %s on %s at %s\n",
		plan.ID, plan.Name, utils.FormatCompactDate(plan.TestDate), plan.Place)
	return nil
}

type DiscardCmd struct {
	Draft string `arg:"" help:"Draft ID."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DiscardCmd) Run(ctx *cli.Context) error {
	ed, err := session.OpenEditor(context.Background(), ctx.Store, c.Draft)
	if err != nil {
		return err
	}
	ok, err := cli.Confirm(fmt.Sprintf("Discard draft for %q?", ed.Draft().BookTitle), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled")
		return nil
	}
	if err := ed.Discard(context.Background()); err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	ctx.Printf("Discarded draft: %s\n", c.Draft)
	return nil
}

func printView(w io.Writer, v reorder.View) {
	for _, item := range v.Items() {
		if item.IsWeek() {
			fmt.Fprintf(w, "%-10s %s\n", item.ID, item.Label)
			continue
		}
		fmt.Fprintf(w, "%-10s   %s\n", item.ID, item.Label)
	}
}
