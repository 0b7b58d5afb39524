package core

import (
	"time"
)

// ClassifyDeadlines splits tasks into "due today" and "overdue" relative to
// now's calendar day.
//
// Due today: soft deadline on now's day, regardless of status. Overdue: any
// non-completed task whose soft or hard deadline has passed. Failed tasks
// stay eligible for overdue so stalled failed work remains visible.
// Comparisons are by calendar day; the deadline fields carry no meaningful
// sub-day precision.
func ClassifyDeadlines(tasks []Task, now time.Time) *DeadlineReport {
	today := truncateToDay(now)

	report := &DeadlineReport{
		DueToday: []Task{},
		Overdue:  []Task{},
	}

	for _, task := range tasks {
		if task.SoftDeadline != nil && truncateToDay(*task.SoftDeadline).Equal(today) {
			report.DueToday = append(report.DueToday, task)
		}
		if task.Status == StatusCompleted {
			continue
		}
		softPast := task.SoftDeadline != nil && truncateToDay(*task.SoftDeadline).Before(today)
		hardPast := task.HardDeadline != nil && truncateToDay(*task.HardDeadline).Before(today)
		if softPast || hardPast {
			report.Overdue = append(report.Overdue, task)
		}
	}

	return report
}
