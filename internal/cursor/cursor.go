// Package cursor tracks the task a user is looking at while walking through a plan.
package cursor

import (
	"errors"
	"fmt"

	"github.com/su2708/studyplan/internal/models"
)

// ErrNoWeeks is returned for a document without any week
var ErrNoWeeks = errors.New("plan has no weeks")

// Direction is the direction of travel for Advance and SetWeek
type Direction int

const (
	Next Direction = iota + 1
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts next/prev/previous
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next":
		return Next, nil
	case "prev", "previous":
		return Previous, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (expected next or prev)", s)
	}
}

func (d Direction) step() int {
	if d == Previous {
		return -1
	}
	return 1
}

// Position addresses a task slot inside a plan document
type Position struct {
	Week  string
	Index int
}

// Cursor walks the tasks of a plan week by week, wrapping at both ends.
// Empty weeks are skipped while advancing. A cursor only lands on an empty
// week through SetWeek, in which case Current reports no task.
type Cursor struct {
	doc   models.PlanDocument
	week  int
	index int
}

// New places a cursor on the first task of the first non-empty week
func New(doc models.PlanDocument) (*Cursor, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	c := &Cursor{doc: doc}
	c.week, c.index = firstTask(doc)
	return c, nil
}

// Restore places a cursor at a saved position and resyncs it against doc
func Restore(doc models.PlanDocument, pos Position) (*Cursor, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	c := &Cursor{doc: doc, week: -1, index: pos.Index}
	if wi := doc.WeekIndex(pos.Week); wi >= 0 {
		c.week = wi
	}
	c.settle()
	return c, nil
}

// Resync replaces the document after a refresh. A week that disappeared falls
// back to the first week, an index past the end of its week is clamped and an
// empty week moves the cursor to the first available task. On error the
// cursor keeps its previous document.
func (c *Cursor) Resync(doc models.PlanDocument) error {
	if err := checkDocument(doc); err != nil {
		return err
	}
	week := c.Week()
	c.doc = doc
	c.week = doc.WeekIndex(week)
	c.settle()
	return nil
}

// Advance moves one task in the given direction and returns the new current task
func (c *Cursor) Advance(dir Direction) (models.Task, error) {
	if dir != Next && dir != Previous {
		return models.Task{}, fmt.Errorf("invalid direction %v", dir)
	}

	count := c.weekLen(c.week)
	next := c.index + dir.step()
	if count > 0 && next >= 0 && next < count {
		c.index = next
		return c.task(), nil
	}

	wi, ok := c.nonEmptyWeek(c.week, dir)
	if !ok {
		return models.Task{}, models.ErrEmptyPlan
	}
	c.week = wi
	if dir == Next {
		c.index = 0
	} else {
		c.index = c.weekLen(wi) - 1
	}
	return c.task(), nil
}

// SetWeek moves to the adjacent week without wrapping. The task index is kept
// when the new week is long enough, otherwise it is clamped to its last task.
func (c *Cursor) SetWeek(dir Direction) error {
	if dir != Next && dir != Previous {
		return fmt.Errorf("invalid direction %v", dir)
	}
	wi := c.week + dir.step()
	if wi < 0 || wi >= len(c.doc.Weeks) {
		return nil
	}
	c.week = wi
	c.clampIndex()
	return nil
}

// Current returns the cursor position and its task. ok is false when the
// cursor sits on an empty week.
func (c *Cursor) Current() (Position, models.Task, bool) {
	pos := c.Position()
	task, ok := c.doc.TaskAt(pos.Week, pos.Index)
	return pos, task, ok
}

func (c *Cursor) Position() Position {
	return Position{Week: c.Week(), Index: c.index}
}

func (c *Cursor) Week() string {
	return c.doc.Weeks[c.week]
}

func (c *Cursor) Index() int {
	return c.index
}

// Document returns the snapshot the cursor currently walks
func (c *Cursor) Document() models.PlanDocument {
	return c.doc
}

func (c *Cursor) task() models.Task {
	t, _ := c.doc.TaskAt(c.Week(), c.index)
	return t
}

func (c *Cursor) weekLen(wi int) int {
	return len(c.doc.Tasks(c.doc.Weeks[wi]))
}

// settle repairs week and index after the document or position changed
func (c *Cursor) settle() {
	if c.week < 0 {
		c.week = 0
	}
	if c.weekLen(c.week) == 0 {
		c.week, c.index = firstTask(c.doc)
		return
	}
	c.clampIndex()
}

func (c *Cursor) clampIndex() {
	count := c.weekLen(c.week)
	switch {
	case count == 0 || c.index < 0:
		c.index = 0
	case c.index >= count:
		c.index = count - 1
	}
}

// nonEmptyWeek finds the nearest week with tasks in direction dir, wrapping
// around. The starting week itself is considered last.
func (c *Cursor) nonEmptyWeek(from int, dir Direction) (int, bool) {
	n := len(c.doc.Weeks)
	for step := 1; step <= n; step++ {
		wi := ((from+dir.step()*step)%n + n) % n
		if c.weekLen(wi) > 0 {
			return wi, true
		}
	}
	return 0, false
}

func firstTask(doc models.PlanDocument) (int, int) {
	for wi, week := range doc.Weeks {
		if len(doc.Tasks(week)) > 0 {
			return wi, 0
		}
	}
	return 0, 0
}

func checkDocument(doc models.PlanDocument) error {
	if len(doc.Weeks) == 0 {
		return ErrNoWeeks
	}
	for _, week := range doc.Weeks {
		if len(doc.Tasks(week)) > 0 {
			return nil
		}
	}
	return models.ErrEmptyPlan
}
