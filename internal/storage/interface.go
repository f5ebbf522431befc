package storage

import (
	"context"

	"github.com/su2708/studyplan/internal/models"
)

// Provider is the plan service studyplan talks to. It owns the authoritative
// copy of every plan: callers send completion toggles and re-fetch the whole
// snapshot instead of editing plans locally.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Plans
	AddPlan(ctx context.Context, payload models.SubmitPayload) (models.StudyPlan, error)
	GetPlan(ctx context.Context, id string) (models.StudyPlan, error)
	ListPlans(ctx context.Context) ([]models.StudyPlan, error)
	// ApplyCompletionToggle flips one task and bumps the plan revision.
	// It does not return the plan; fetch it again with GetPlan.
	ApplyCompletionToggle(ctx context.Context, planID string, toggle models.CompletionToggle) error
	DeletePlan(ctx context.Context, id string) error

	// Drafts
	SaveDraft(ctx context.Context, draft models.Draft) error
	GetDraft(ctx context.Context, id string) (models.Draft, error)
	ListDrafts(ctx context.Context) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, id string) error

	// Cursor
	GetCursorPosition(ctx context.Context, planID string) (models.CursorPosition, error)
	SaveCursorPosition(ctx context.Context, pos models.CursorPosition) error

	// Reminders
	GetReminderSettings(ctx context.Context, planID string) (models.ReminderSettings, error)
	SaveReminderSettings(ctx context.Context, settings models.ReminderSettings) error

	// Achievements
	// CompletePlan records an achievement for a fully completed plan and
	// removes the plan. It returns ErrPlanNotComplete otherwise.
	CompletePlan(ctx context.Context, planID string) (models.Achievement, error)
	ListAchievements(ctx context.Context) ([]models.Achievement, error)

	// Utils
	GetConfigPath() string
}
