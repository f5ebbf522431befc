package models

import (
	"fmt"
	"slices"

	"github.com/su2708/studyplan/internal/constants"
)

// ReminderSettings controls when study reminders for a plan may fire
type ReminderSettings struct {
	PlanID        string                 `json:"plan_id"`
	StartHour     int                    `json:"start_hour"`
	StartMinute   int                    `json:"start_minute"`
	EndHour       int                    `json:"end_hour"`
	EndMinute     int                    `json:"end_minute"`
	IntervalHours int                    `json:"interval_hours"`
	MessageStyle  constants.MessageStyle `json:"message_style"`
	IsActive      bool                   `json:"is_active"`
}

// DefaultReminderSettings returns the settings a newly submitted plan starts with
func DefaultReminderSettings(planID string) ReminderSettings {
	return ReminderSettings{
		PlanID:        planID,
		StartHour:     constants.DefaultReminderStartHour,
		StartMinute:   constants.DefaultReminderStartMinute,
		EndHour:       constants.DefaultReminderEndHour,
		EndMinute:     constants.DefaultReminderEndMinute,
		IntervalHours: constants.DefaultReminderInterval,
		MessageStyle:  constants.DefaultReminderStyle,
		IsActive:      true,
	}
}

func (r ReminderSettings) Validate() error {
	if r.StartHour < 0 || r.StartHour > 23 || r.EndHour < 0 || r.EndHour > 23 {
		return fmt.Errorf("%w: hours must be between 0 and 23", ErrInvalidReminder)
	}
	if r.StartMinute < 0 || r.StartMinute > 59 || r.EndMinute < 0 || r.EndMinute > 59 {
		return fmt.Errorf("%w: minutes must be between 0 and 59", ErrInvalidReminder)
	}
	if r.IntervalHours < constants.MinReminderIntervalHours || r.IntervalHours > constants.MaxReminderIntervalHours {
		return fmt.Errorf("%w: interval must be between %d and %d hours", ErrInvalidReminder,
			constants.MinReminderIntervalHours, constants.MaxReminderIntervalHours)
	}
	if !slices.Contains(constants.MessageStyles, r.MessageStyle) {
		return fmt.Errorf("%w: unknown message style %q", ErrInvalidReminder, r.MessageStyle)
	}
	return nil
}

// ReminderPatch is a partial update of ReminderSettings. Nil fields are left unchanged.
type ReminderPatch struct {
	StartHour     *int
	StartMinute   *int
	EndHour       *int
	EndMinute     *int
	IntervalHours *int
	MessageStyle  *constants.MessageStyle
	IsActive      *bool
}

// IsEmpty reports whether the patch changes nothing
func (p ReminderPatch) IsEmpty() bool {
	return p == ReminderPatch{}
}

// Apply returns settings with the patch applied, validated as a whole
func (p ReminderPatch) Apply(settings ReminderSettings) (ReminderSettings, error) {
	out := settings
	if p.StartHour != nil {
		out.StartHour = *p.StartHour
	}
	if p.StartMinute != nil {
		out.StartMinute = *p.StartMinute
	}
	if p.EndHour != nil {
		out.EndHour = *p.EndHour
	}
	if p.EndMinute != nil {
		out.EndMinute = *p.EndMinute
	}
	if p.IntervalHours != nil {
		out.IntervalHours = *p.IntervalHours
	}
	if p.MessageStyle != nil {
		out.MessageStyle = *p.MessageStyle
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	if err := out.Validate(); err != nil {
		return settings, err
	}
	return out, nil
}
