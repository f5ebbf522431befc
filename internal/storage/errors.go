package storage

import "errors"

var (
	// ErrNotFound is returned when a plan, draft or setting does not exist
	ErrNotFound = errors.New("not found")
	// ErrPlanNotComplete is returned when finishing a plan that still has open tasks
	ErrPlanNotComplete = errors.New("plan still has unfinished tasks")
)
