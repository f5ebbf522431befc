package storage

import (
	"encoding/json"
	"fmt"

	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/progress"
)

// EncodeDocument stores a plan the way the plan service delivers it:
// {"total_plan": {...}} with weeks in order.
func EncodeDocument(doc models.PlanDocument) ([]byte, error) {
	snap := models.SnapshotFromDocument(doc)
	data, err := json.Marshal(snap.TestPlan)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return data, nil
}

func DecodeDocument(data []byte) (models.PlanDocument, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap.TestPlan); err != nil {
		return models.PlanDocument{}, fmt.Errorf("decoding plan: %w", err)
	}
	return snap.Document()
}

func EncodeItems(items []models.PlanItem) ([]byte, error) {
	if items == nil {
		items = []models.PlanItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding draft items: %w", err)
	}
	return data, nil
}

func DecodeItems(data []byte) ([]models.PlanItem, error) {
	var items []models.PlanItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding draft items: %w", err)
	}
	return items, nil
}

// ToggledDocument applies a completion toggle to a stored plan and returns
// the new encoded document.
func ToggledDocument(stored []byte, toggle models.CompletionToggle) ([]byte, error) {
	doc, err := DecodeDocument(stored)
	if err != nil {
		return nil, err
	}
	next, err := doc.WithTaskToggled(toggle.Week, toggle.TaskIdx)
	if err != nil {
		return nil, err
	}
	return EncodeDocument(next)
}

// CheckComplete returns ErrPlanNotComplete unless every task of a non-empty plan is done
func CheckComplete(doc models.PlanDocument) error {
	if progress.Summarize(doc).Anomalous() || !progress.IsPlanFullyComplete(doc) {
		return ErrPlanNotComplete
	}
	return nil
}
