package models

type ItemKind string

const (
	ItemKindWeek ItemKind = "week"
	ItemKindTask ItemKind = "task"
)

// PlanItem is one entry of the flattened plan used while reordering.
// Week items carry a 1-based WeekNumber; task items belong to the nearest
// preceding week item.
type PlanItem struct {
	Kind       ItemKind `json:"kind"`
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	WeekNumber int      `json:"week_number,omitempty"`
}

func (i PlanItem) IsWeek() bool {
	return i.Kind == ItemKindWeek
}
