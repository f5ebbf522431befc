package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/su2708/studyplan/internal/constants"
)

// TaskEntry is the wire form of a tracked task
type TaskEntry struct {
	Task   string `json:"task" yaml:"task"`
	IsDone bool   `json:"is_done" yaml:"is_done"`
}

type TestPlan struct {
	TotalPlan WeekMap[TaskEntry] `json:"total_plan" yaml:"total_plan"`
}

// Snapshot is a full plan document as delivered by the plan service
type Snapshot struct {
	TestPlan TestPlan `json:"test_plan" yaml:"test_plan"`
}

// Document converts the snapshot into a PlanDocument
func (s Snapshot) Document() (PlanDocument, error) {
	plan := s.TestPlan.TotalPlan
	tasks := make(map[string][]Task, plan.Len())
	for _, week := range plan.Weeks {
		entries := plan.Get(week)
		list := make([]Task, 0, len(entries))
		for _, e := range entries {
			list = append(list, Task{Description: e.Task, IsDone: e.IsDone})
		}
		tasks[week] = list
	}
	return NewPlanDocument(plan.Weeks, tasks)
}

// SnapshotFromDocument converts a PlanDocument to its wire form
func SnapshotFromDocument(doc PlanDocument) Snapshot {
	var snap Snapshot
	for _, week := range doc.Weeks {
		tasks := doc.Tasks(week)
		entries := make([]TaskEntry, 0, len(tasks))
		for _, t := range tasks {
			entries = append(entries, TaskEntry{Task: t.Description, IsDone: t.IsDone})
		}
		// doc weeks are unique, Add cannot fail
		_ = snap.TestPlan.TotalPlan.Add(week, entries)
	}
	return snap
}

// CompletionToggle asks the plan service to flip the completion flag of one task
type CompletionToggle struct {
	Week    string `json:"week"`
	TaskIdx int    `json:"task_idx"`
}

// GeneratedPlan is a freshly generated plan before the user edits it.
// Tasks are bare descriptions since nothing has been worked on yet.
type GeneratedPlan struct {
	BookTitle string          `json:"book_title" yaml:"book_title"`
	Today     string          `json:"today,omitempty" yaml:"today,omitempty"` // YYYYMMDD
	TestDay   string          `json:"test_day" yaml:"test_day"`               // YYYYMMDD
	TotalPlan WeekMap[string] `json:"total_plan" yaml:"total_plan"`
}

// Validate checks the fields the preview needs
func (g GeneratedPlan) Validate() error {
	if strings.TrimSpace(g.BookTitle) == "" {
		return fmt.Errorf("%w: book_title is required", ErrInvalidPlan)
	}
	if _, err := time.Parse(constants.CompactDateFormat, g.TestDay); err != nil {
		return fmt.Errorf("%w: test_day must be YYYYMMDD: %v", ErrInvalidPlan, err)
	}
	if g.Today != "" {
		if _, err := time.Parse(constants.CompactDateFormat, g.Today); err != nil {
			return fmt.Errorf("%w: today must be YYYYMMDD: %v", ErrInvalidPlan, err)
		}
	}
	if g.TotalPlan.Len() == 0 {
		return fmt.Errorf("%w: total_plan has no weeks", ErrInvalidPlan)
	}
	return nil
}

type SubmitPlan struct {
	TotalPlan WeekMap[string] `json:"total_plan" yaml:"total_plan"`
}

// SubmitPayload is the edited plan sent back to the plan service
type SubmitPayload struct {
	TestName  string     `json:"test_name"`
	TestDate  string     `json:"test_date"`
	TestPlace string     `json:"test_place"`
	TestPlan  SubmitPlan `json:"test_plan"`
}

// NewSubmitPayload builds a submission from an edited document, dropping
// completion flags.
func NewSubmitPayload(name, testDate, place string, doc PlanDocument) (SubmitPayload, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubmitPayload{}, fmt.Errorf("%w: test name is required", ErrInvalidPlan)
	}
	place = strings.TrimSpace(place)
	if place == "" {
		place = constants.DefaultTestPlace
	}

	payload := SubmitPayload{
		TestName:  name,
		TestDate:  testDate,
		TestPlace: place,
	}
	for _, week := range doc.Weeks {
		tasks := doc.Tasks(week)
		descs := make([]string, 0, len(tasks))
		for _, t := range tasks {
			descs = append(descs, t.Description)
		}
		_ = payload.TestPlan.TotalPlan.Add(week, descs)
	}
	return payload, nil
}

// Document returns the submitted plan with every task marked not done
func (p SubmitPayload) Document() (PlanDocument, error) {
	plan := p.TestPlan.TotalPlan
	tasks := make(map[string][]Task, plan.Len())
	for _, week := range plan.Weeks {
		descs := plan.Get(week)
		list := make([]Task, 0, len(descs))
		for _, d := range descs {
			list = append(list, Task{Description: d})
		}
		tasks[week] = list
	}
	return NewPlanDocument(plan.Weeks, tasks)
}
