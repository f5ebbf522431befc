package models

import "errors"

var (
	// ErrUnknownWeek is returned when a week label is not part of a plan document
	ErrUnknownWeek = errors.New("unknown week")
	// ErrDuplicateWeek is returned when a week label appears more than once
	ErrDuplicateWeek = errors.New("duplicate week")
	// ErrEmptyPlan is returned when a plan document has no tasks in any week
	ErrEmptyPlan = errors.New("plan has no tasks")
	// ErrTaskIndexOutOfRange is returned when a task index does not address a task in its week
	ErrTaskIndexOutOfRange = errors.New("task index out of range")
	// ErrInvalidPlan is returned when a generated plan or submission is incomplete
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrInvalidReminder is returned when reminder settings fail validation
	ErrInvalidReminder = errors.New("invalid reminder settings")
)
