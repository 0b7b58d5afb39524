package core

import (
	"time"
)

const dayFormat = "2006-01-02"

// truncateToDay drops the sub-day portion of a timestamp, keeping its location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameOrBetween reports whether the calendar day of t falls in [from, to],
// where from and to are already day-truncated.
func sameOrBetween(t, from, to time.Time) bool {
	d := truncateToDay(t)
	return !d.Before(from) && !d.After(to)
}

// Summarize computes the analytics summary for [from, to] (inclusive, by
// calendar day) from full scans of tasks and progress entries.
//
// Created tasks are bucketed by created_at; completed and failed tasks by the
// timestamp of their most recent transition into that terminal status. The
// completed-per-day series is zero-filled across the whole range so chart
// axes stay stable; the effort series omits days with no entries, since an
// absent day is not the same as a true zero average.
//
// The result depends only on set membership, never on input order.
func Summarize(tasks []Task, entries []ProgressEntry, from, to time.Time) (*AnalyticsSummary, error) {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	if fromDay.After(toDay) {
		return nil, &ValidationError{Field: "range", Reason: "from is after to"}
	}

	summary := &AnalyticsSummary{
		CompletedPerDay:     []DayCount{},
		AverageEffortPerDay: []DayEffort{},
	}

	completedByDay := make(map[string]int)
	for _, task := range tasks {
		if sameOrBetween(task.CreatedAt, fromDay, toDay) {
			summary.CreatedTasks++
		}
		switch {
		case task.Status == StatusCompleted && task.CompletedAt != nil:
			if sameOrBetween(*task.CompletedAt, fromDay, toDay) {
				summary.CompletedTasks++
				completedByDay[task.CompletedAt.Format(dayFormat)]++
			}
		case task.Status == StatusFailed && task.FailedAt != nil:
			if sameOrBetween(*task.FailedAt, fromDay, toDay) {
				summary.FailedTasks++
			}
		}
	}

	effortSum := make(map[string]int)
	effortCount := make(map[string]int)
	for _, entry := range entries {
		if !sameOrBetween(entry.Timestamp, fromDay, toDay) {
			continue
		}
		key := entry.Timestamp.Format(dayFormat)
		effortSum[key] += entry.EffortScore
		effortCount[key]++
	}

	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		summary.CompletedPerDay = append(summary.CompletedPerDay, DayCount{
			Date:  key,
			Count: completedByDay[key],
		})
		if n := effortCount[key]; n > 0 {
			summary.AverageEffortPerDay = append(summary.AverageEffortPerDay, DayEffort{
				Date:          key,
				AverageEffort: float64(effortSum[key]) / float64(n),
			})
		}
	}

	return summary, nil
}
