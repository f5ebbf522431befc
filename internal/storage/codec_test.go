package storage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/su2708/studyplan/internal/models"
)

func sampleDoc(t *testing.T) models.PlanDocument {
	t.Helper()
	doc, err := models.NewPlanDocument([]string{"week 2", "week 1"}, map[string][]models.Task{
		"week 2": {{Description: "ch 3"}, {Description: "ch 4", IsDone: true}},
		"week 1": {{Description: "ch 1"}},
	})
	if err != nil {
		t.Fatalf("NewPlanDocument() error = %v", err)
	}
	return doc
}

func TestEncodeDocument(t *testing.T) {
	doc := sampleDoc(t)
	data, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}
	want := `{"total_plan":{"week 2":[{"task":"ch 3","is_done":false},{"task":"ch 4","is_done":true}],"week 1":[{"task":"ch 1","is_done":false}]}}`
	if string(data) != want {
		t.Errorf("EncodeDocument() = %s, want %s", data, want)
	}

	got, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("DecodeDocument() = %+v, want %+v", got, doc)
	}
}

func TestToggledDocument(t *testing.T) {
	data, _ := EncodeDocument(sampleDoc(t))

	next, err := ToggledDocument(data, models.CompletionToggle{Week: "week 1", TaskIdx: 0})
	if err != nil {
		t.Fatalf("ToggledDocument() error = %v", err)
	}
	doc, _ := DecodeDocument(next)
	if !doc.TasksByWeek["week 1"][0].IsDone {
		t.Error("toggle not applied")
	}

	if _, err := ToggledDocument(data, models.CompletionToggle{Week: "week 9"}); !errors.Is(err, models.ErrUnknownWeek) {
		t.Errorf("ToggledDocument() error = %v, want %v", err, models.ErrUnknownWeek)
	}
}

func TestCheckComplete(t *testing.T) {
	doc := sampleDoc(t)
	if err := CheckComplete(doc); !errors.Is(err, ErrPlanNotComplete) {
		t.Errorf("CheckComplete() error = %v, want %v", err, ErrPlanNotComplete)
	}

	doc, _ = doc.WithTaskToggled("week 2", 0)
	doc, _ = doc.WithTaskToggled("week 1", 0)
	if err := CheckComplete(doc); err != nil {
		t.Errorf("CheckComplete() error = %v", err)
	}

	empty, _ := models.NewPlanDocument([]string{"week 1"}, nil)
	if err := CheckComplete(empty); !errors.Is(err, ErrPlanNotComplete) {
		t.Errorf("CheckComplete(empty) error = %v, want %v", err, ErrPlanNotComplete)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	data, err := EncodeItems(nil)
	if err != nil || string(data) != "[]" {
		t.Fatalf("EncodeItems(nil) = %s, %v", data, err)
	}

	items := []models.PlanItem{
		{Kind: models.ItemKindWeek, ID: "week-1", Label: "W1", WeekNumber: 1},
		{Kind: models.ItemKindTask, ID: "task-1-1", Label: "read"},
	}
	data, _ = EncodeItems(items)
	got, err := DecodeItems(data)
	if err != nil {
		t.Fatalf("DecodeItems() error = %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("DecodeItems() = %+v, want %+v", got, items)
	}
}
