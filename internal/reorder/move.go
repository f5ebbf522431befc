package reorder

import "github.com/su2708/studyplan/internal/models"

// Move applies one drag-and-drop move and reports whether it was accepted.
// Rejected moves, unknown ids and same-id drops return v unchanged.
//
// Tasks move freely, one item at a time. A week marker moves together with
// the tasks it owns, and only onto an adjacent week number: the destination
// is the target itself when it is a marker, otherwise the nearest marker
// before the target when moving down or after it when moving up. Week 1
// never moves and nothing is placed ahead of it.
func Move(v View, sourceID, targetID string) (View, bool) {
	if sourceID == targetID {
		return v, false
	}
	src, tgt := v.indexOf(sourceID), v.indexOf(targetID)
	if src < 0 || tgt < 0 {
		return v, false
	}

	move := moveTask
	if v.items[src].IsWeek() {
		move = moveWeek
	}
	out, ok := move(v.items, src, tgt)
	if !ok {
		return v, false
	}
	if first := out[0]; !first.IsWeek() || first.WeekNumber != 1 {
		return v, false
	}
	return View{items: out}, true
}

func moveTask(items []models.PlanItem, src, tgt int) ([]models.PlanItem, bool) {
	// a task dropped on the leading marker lands right after it
	if tgt == 0 && items[0].IsWeek() {
		tgt = 1
	}
	if tgt == src {
		return nil, false
	}
	return arrayMove(items, src, tgt), true
}

func moveWeek(items []models.PlanItem, src, tgt int) ([]models.PlanItem, bool) {
	source := items[src]
	if source.WeekNumber == 1 {
		return nil, false
	}

	down := tgt > src
	dest := tgt
	if !items[tgt].IsWeek() {
		if down {
			dest = markerBefore(items, tgt)
		} else {
			dest = markerAfter(items, tgt)
		}
	}
	if dest < 0 || dest == src {
		return nil, false
	}
	if abs(source.WeekNumber-items[dest].WeekNumber) != 1 {
		return nil, false
	}

	srcEnd := blockEnd(items, src)
	block := append([]models.PlanItem(nil), items[src:srcEnd]...)
	rest := make([]models.PlanItem, 0, len(items)-len(block))
	rest = append(rest, items[:src]...)
	rest = append(rest, items[srcEnd:]...)

	// dest shifts left once the source block is gone
	if dest > src {
		dest -= len(block)
	}
	at := dest
	if down {
		at = blockEnd(rest, dest)
	}

	out := make([]models.PlanItem, 0, len(items))
	out = append(out, rest[:at]...)
	out = append(out, block...)
	out = append(out, rest[at:]...)
	return out, true
}

// arrayMove removes the item at from and reinserts it at to
func arrayMove(items []models.PlanItem, from, to int) []models.PlanItem {
	out := make([]models.PlanItem, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	item := items[from]
	out = append(out[:to], append([]models.PlanItem{item}, out[to:]...)...)
	return out
}

// blockEnd returns the index just past the tasks owned by the marker at start
func blockEnd(items []models.PlanItem, start int) int {
	for i := start + 1; i < len(items); i++ {
		if items[i].IsWeek() {
			return i
		}
	}
	return len(items)
}

func markerBefore(items []models.PlanItem, i int) int {
	for j := i - 1; j >= 0; j-- {
		if items[j].IsWeek() {
			return j
		}
	}
	return -1
}

func markerAfter(items []models.PlanItem, i int) int {
	for j := i + 1; j < len(items); j++ {
		if items[j].IsWeek() {
			return j
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
