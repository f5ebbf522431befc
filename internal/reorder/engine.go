package reorder

import (
	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/models"
)

// Engine holds the view being edited and the last document it produced.
//
// A strict engine returns ErrMalformedView from Commit. A lenient engine logs
// the problem and falls back to the last good document instead.
type Engine struct {
	view   View
	last   *models.PlanDocument
	strict bool
}

func NewEngine(view View, strict bool) *Engine {
	e := &Engine{view: view, strict: strict}
	if doc, err := view.ToDocument(); err == nil {
		e.last = &doc
	}
	return e
}

func (e *Engine) View() View {
	return e.view
}

// Move applies a move to the held view. Rejected moves are logged and ignored.
func (e *Engine) Move(sourceID, targetID string) bool {
	next, ok := Move(e.view, sourceID, targetID)
	if !ok {
		logger.Debug("reorder move rejected", "source", sourceID, "target", targetID)
		return false
	}
	e.view = next
	if doc, err := next.ToDocument(); err == nil {
		e.last = &doc
	}
	logger.Debug("reorder move applied", "source", sourceID, "target", targetID)
	return true
}

// Commit converts the held view back into a plan document
func (e *Engine) Commit() (models.PlanDocument, error) {
	doc, err := e.view.ToDocument()
	if err == nil {
		return doc, nil
	}
	if e.strict || e.last == nil {
		return models.PlanDocument{}, err
	}
	logger.Error("plan view is malformed, keeping last good plan", "err", err)
	return e.last.Clone(), nil
}
