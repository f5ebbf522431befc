// Package progress computes completion statistics for a plan document.
package progress

import (
	"fmt"
	"math"

	"github.com/su2708/studyplan/internal/models"
)

// WeekStats is the completion count of a single week
type WeekStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// WeekSummary pairs a week label with its stats
type WeekSummary struct {
	Week string `json:"week"`
	WeekStats
}

// Summary is the overall and per-week completion of a plan
type Summary struct {
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Percent   int           `json:"percent"`
	Weeks     []WeekSummary `json:"weeks"`
}

// Anomalous reports a plan without any tasks. Such a plan is vacuously
// complete and must not be treated as finished.
func (s Summary) Anomalous() bool {
	return s.Total == 0
}

// TotalTaskCount returns the number of tasks across all weeks
func TotalTaskCount(doc models.PlanDocument) int {
	total := 0
	for _, week := range doc.Weeks {
		total += len(doc.Tasks(week))
	}
	return total
}

// CompletedTaskCount returns the number of done tasks across all weeks
func CompletedTaskCount(doc models.PlanDocument) int {
	completed := 0
	for _, week := range doc.Weeks {
		completed += countDone(doc.Tasks(week))
	}
	return completed
}

// OverallProgressPercent returns the rounded share of completed tasks, 0 for an empty plan
func OverallProgressPercent(doc models.PlanDocument) int {
	return percent(CompletedTaskCount(doc), TotalTaskCount(doc))
}

// WeekProgress returns the completion counts of one week
func WeekProgress(doc models.PlanDocument, week string) (WeekStats, error) {
	if !doc.HasWeek(week) {
		return WeekStats{}, fmt.Errorf("%w: %q", models.ErrUnknownWeek, week)
	}
	tasks := doc.Tasks(week)
	return WeekStats{Completed: countDone(tasks), Total: len(tasks)}, nil
}

// IsPlanFullyComplete reports whether every task is done. It is true for a
// plan with no tasks; check Summary.Anomalous before acting on it.
func IsPlanFullyComplete(doc models.PlanDocument) bool {
	for _, week := range doc.Weeks {
		for _, task := range doc.Tasks(week) {
			if !task.IsDone {
				return false
			}
		}
	}
	return true
}

// Summarize returns overall and per-week completion in week order
func Summarize(doc models.PlanDocument) Summary {
	s := Summary{Weeks: make([]WeekSummary, 0, len(doc.Weeks))}
	for _, week := range doc.Weeks {
		tasks := doc.Tasks(week)
		stats := WeekStats{Completed: countDone(tasks), Total: len(tasks)}
		s.Weeks = append(s.Weeks, WeekSummary{Week: week, WeekStats: stats})
		s.Completed += stats.Completed
		s.Total += stats.Total
	}
	s.Percent = percent(s.Completed, s.Total)
	return s
}

func countDone(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsDone {
			n++
		}
	}
	return n
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
