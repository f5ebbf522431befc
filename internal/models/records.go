package models

import "time"

// StudyPlan is a submitted plan being tracked
type StudyPlan struct {
	ID         string       `json:"id"`
	Name       string       `json:"test_name"`
	TestDate   string       `json:"test_date"` // YYYYMMDD
	Place      string       `json:"test_place"`
	Document   PlanDocument `json:"-"`
	OnProgress bool         `json:"on_progress"`
	Revision   int          `json:"revision"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Draft is a generated plan under review. It holds the flattened item
// sequence between edits so the preview survives across invocations.
type Draft struct {
	ID        string     `json:"id"`
	BookTitle string     `json:"book_title"`
	TestDay   string     `json:"test_day"`        // YYYYMMDD
	Today     string     `json:"today,omitempty"` // YYYYMMDD
	Items     []PlanItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CursorPosition is the last task a user looked at in a plan
type CursorPosition struct {
	PlanID    string `json:"plan_id"`
	Week      string `json:"week"`
	TaskIndex int    `json:"task_index"`
}

// Achievement records a plan that was finished with every task done
type Achievement struct {
	ID        string    `json:"id" yaml:"id"`
	PlanID    string    `json:"plan_id" yaml:"plan_id"`
	TestName  string    `json:"test_name" yaml:"test_name"`
	TestDate  string    `json:"test_date" yaml:"test_date"`
	TestPlace string    `json:"test_place" yaml:"test_place"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
