// Package reorder projects a plan into a flat item list for drag-and-drop
// editing and applies validated moves to it.
package reorder

import (
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/models"
)

// ErrMalformedView is returned when a task item is not preceded by a week marker
var ErrMalformedView = errors.New("malformed plan view")

// View is an ordered sequence of week markers and task items.
// Values are never modified in place; Move returns a new View.
type View struct {
	items []models.PlanItem
}

// NewView wraps a stored item sequence. Call Validate before editing it.
func NewView(items []models.PlanItem) View {
	return View{items: append([]models.PlanItem(nil), items...)}
}

// FromDocument flattens a document. Ids are week-<n> and task-<n>-<m>, both 1-based.
func FromDocument(doc models.PlanDocument) View {
	var items []models.PlanItem
	for wi, week := range doc.Weeks {
		items = append(items, weekItem(wi+1, week))
		for ti, task := range doc.Tasks(week) {
			items = append(items, taskItem(wi+1, ti+1, task.Description))
		}
	}
	return View{items: items}
}

// FromGenerated flattens a freshly generated plan
func FromGenerated(plan models.GeneratedPlan) View {
	var items []models.PlanItem
	for wi, week := range plan.TotalPlan.Weeks {
		items = append(items, weekItem(wi+1, week))
		for ti, desc := range plan.TotalPlan.Get(week) {
			items = append(items, taskItem(wi+1, ti+1, desc))
		}
	}
	return View{items: items}
}

func weekItem(n int, label string) models.PlanItem {
	return models.PlanItem{
		Kind:       models.ItemKindWeek,
		ID:         fmt.Sprintf("%s%d", constants.WeekItemPrefix, n),
		Label:      label,
		WeekNumber: n,
	}
}

func taskItem(n, m int, desc string) models.PlanItem {
	return models.PlanItem{
		Kind:  models.ItemKindTask,
		ID:    fmt.Sprintf("%s%d-%d", constants.TaskItemPrefix, n, m),
		Label: desc,
	}
}

// Items returns a copy of the sequence
func (v View) Items() []models.PlanItem {
	return append([]models.PlanItem(nil), v.items...)
}

func (v View) Len() int {
	return len(v.items)
}

func (v View) indexOf(id string) int {
	for i, item := range v.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that the view starts with week 1 and that item ids are unique
func (v View) Validate() error {
	if len(v.items) == 0 {
		return fmt.Errorf("%w: no items", ErrMalformedView)
	}
	if first := v.items[0]; !first.IsWeek() || first.WeekNumber != 1 {
		return fmt.Errorf("%w: first item %q is not week 1", ErrMalformedView, first.ID)
	}
	seen := make(map[string]struct{}, len(v.items))
	for i, item := range v.items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrMalformedView, item.ID)
		}
		seen[item.ID] = struct{}{}
		switch item.Kind {
		case models.ItemKindWeek:
			if item.WeekNumber < 1 {
				return fmt.Errorf("%w: week item %q at %d has no week number", ErrMalformedView, item.ID, i)
			}
		case models.ItemKindTask:
		default:
			return fmt.Errorf("%w: item %q has unknown kind %q", ErrMalformedView, item.ID, item.Kind)
		}
	}
	return nil
}

// ToDocument rebuilds the nested plan. Each week marker opens a task list and
// each task joins the list opened last.
func (v View) ToDocument() (models.PlanDocument, error) {
	var weeks []string
	tasks := make(map[string][]models.Task)
	current := ""
	for i, item := range v.items {
		if item.IsWeek() {
			if _, dup := tasks[item.Label]; dup {
				return models.PlanDocument{}, fmt.Errorf("%w: %q", models.ErrDuplicateWeek, item.Label)
			}
			current = item.Label
			weeks = append(weeks, current)
			tasks[current] = []models.Task{}
			continue
		}
		if len(weeks) == 0 {
			return models.PlanDocument{}, fmt.Errorf("%w: task %q at position %d precedes every week", ErrMalformedView, item.ID, i)
		}
		tasks[current] = append(tasks[current], models.Task{Description: item.Label})
	}
	return models.NewPlanDocument(weeks, tasks)
}
