package reminders

import (
	"context"
	"fmt"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/models"
)

type ShowCmd struct {
	Plan string `arg:"" help:"Plan ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetReminderSettings(context.Background(), c.Plan)
	if err != nil {
		return fmt.Errorf("failed to get reminder settings: %w", err)
	}
	printSettings(ctx, settings)
	return nil
}

// SetCmd updates the reminder settings of a plan. Only the given flags change.
type SetCmd struct {
	Plan string `arg:"" help:"Plan ID."`

	StartHour     *int    `help:"Hour reminders start (0-23)."`
	StartMinute   *int    `help:"Minute reminders start (0-59)."`
	EndHour       *int    `help:"Hour reminders stop (0-23)."`
	EndMinute     *int    `help:"Minute reminders stop (0-59)."`
	IntervalHours *int    `name:"interval" help:"Hours between reminders (1-3)."`
	Style         *string `help:"Message style (encourage, harsh, polite, witty)."`
	Active        *bool   `help:"Enable or disable reminders."`
}

func (c *SetCmd) patch() models.ReminderPatch {
	p := models.ReminderPatch{
		StartHour:     c.StartHour,
		StartMinute:   c.StartMinute,
		EndHour:       c.EndHour,
		EndMinute:     c.EndMinute,
		IntervalHours: c.IntervalHours,
		IsActive:      c.Active,
	}
	if c.Style != nil {
		style := constants.MessageStyle(*c.Style)
		p.MessageStyle = &style
	}
	return p
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	patch := c.patch()
	if patch.IsEmpty() {
		ctx.Println("No changes specified. Use 'studyplan reminder show' to view settings or flags to update them.")
		return nil
	}

	settings, err := ctx.Store.GetReminderSettings(context.Background(), c.Plan)
	if err != nil {
		return fmt.Errorf("failed to get reminder settings: %w", err)
	}
	updated, err := patch.Apply(settings)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveReminderSettings(context.Background(), updated); err != nil {
		return fmt.Errorf("failed to save reminder settings: %w", err)
	}

	ctx.Println("Reminder settings updated.")
	printSettings(ctx, updated)
	return nil
}

func printSettings(ctx *cli.Context, s models.ReminderSettings) {
	ctx.Printf("Reminders for plan %s:\n", s.PlanID)
	ctx.Printf("  Active:   %v\n", s.IsActive)
	ctx.Printf("  Window:   %02d:%02d - %02d:%02d\n", s.StartHour, s.StartMinute, s.EndHour, s.EndMinute)
	ctx.Printf("  Interval: every %d hour(s)\n", s.IntervalHours)
	ctx.Printf("  Style:    %s\n", s.MessageStyle)
}
