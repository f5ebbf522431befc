package models

import "fmt"

// Task is a single study item inside a week
type Task struct {
	Description string `json:"description"`
	IsDone      bool   `json:"is_done"`
}

// PlanDocument is the nested week -> tasks structure of a study schedule.
// Weeks holds the chronological order; TasksByWeek has an entry for every week.
// Documents are treated as immutable snapshots: helpers return new documents.
type PlanDocument struct {
	Weeks       []string
	TasksByWeek map[string][]Task
}

// NewPlanDocument builds a document from an ordered week list and a task mapping.
// Weeks without an entry get an empty task list. Task entries for weeks that are
// not listed and repeated week labels are rejected.
func NewPlanDocument(weeks []string, tasks map[string][]Task) (PlanDocument, error) {
	doc := PlanDocument{
		Weeks:       make([]string, 0, len(weeks)),
		TasksByWeek: make(map[string][]Task, len(weeks)),
	}
	for _, week := range weeks {
		if _, exists := doc.TasksByWeek[week]; exists {
			return PlanDocument{}, fmt.Errorf("%w: %q", ErrDuplicateWeek, week)
		}
		doc.Weeks = append(doc.Weeks, week)
		doc.TasksByWeek[week] = append([]Task{}, tasks[week]...)
	}
	for week := range tasks {
		if _, ok := doc.TasksByWeek[week]; !ok {
			return PlanDocument{}, fmt.Errorf("%w: %q", ErrUnknownWeek, week)
		}
	}
	return doc, nil
}

// Clone returns a deep copy of the document
func (d PlanDocument) Clone() PlanDocument {
	out := PlanDocument{
		Weeks:       append([]string{}, d.Weeks...),
		TasksByWeek: make(map[string][]Task, len(d.TasksByWeek)),
	}
	for week, tasks := range d.TasksByWeek {
		out.TasksByWeek[week] = append([]Task{}, tasks...)
	}
	return out
}

// WeekIndex returns the position of week in Weeks, or -1 if it is absent
func (d PlanDocument) WeekIndex(week string) int {
	for i, w := range d.Weeks {
		if w == week {
			return i
		}
	}
	return -1
}

func (d PlanDocument) HasWeek(week string) bool {
	return d.WeekIndex(week) >= 0
}

// Tasks returns the task list of a week, or nil when the week is unknown.
// The returned slice must not be modified.
func (d PlanDocument) Tasks(week string) []Task {
	return d.TasksByWeek[week]
}

// TaskAt returns the task at (week, index)
func (d PlanDocument) TaskAt(week string, index int) (Task, bool) {
	tasks := d.TasksByWeek[week]
	if index < 0 || index >= len(tasks) {
		return Task{}, false
	}
	return tasks[index], true
}

// WithTaskToggled returns a copy of the document with the completion flag of
// one task flipped.
func (d PlanDocument) WithTaskToggled(week string, index int) (PlanDocument, error) {
	if !d.HasWeek(week) {
		return PlanDocument{}, fmt.Errorf("%w: %q", ErrUnknownWeek, week)
	}
	if _, ok := d.TaskAt(week, index); !ok {
		return PlanDocument{}, fmt.Errorf("%w: %s[%d]", ErrTaskIndexOutOfRange, week, index)
	}
	out := d.Clone()
	out.TasksByWeek[week][index].IsDone = !out.TasksByWeek[week][index].IsDone
	return out, nil
}
