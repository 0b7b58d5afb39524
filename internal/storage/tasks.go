package storage

import (
	"database/sql"
	"fmt"
)

const taskColumns = `id, title, description, type, project_id, status,
	soft_deadline, hard_deadline, priority_mode, priority_level,
	priority_period_start, priority_period_end, tags,
	created_at, updated_at, completed_at, failed_at`

// SaveTask inserts a new task row
func (s *Store) SaveTask(task *TaskRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.Title, task.Description, task.Type, task.ProjectID, task.Status,
		nullTime(task.SoftDeadline), nullTime(task.HardDeadline),
		task.PriorityMode, task.PriorityLevel,
		nullTime(task.PriorityPeriodStart), nullTime(task.PriorityPeriodEnd), task.Tags,
		task.CreatedAt, task.UpdatedAt, nullTime(task.CompletedAt), nullTime(task.FailedAt))

	return err
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(id string) (*TaskRecord, error) {
	row := s.db.QueryRow(`
		SELECT `+taskColumns+` FROM tasks WHERE id = ?
	`, id)

	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

// ListTasks retrieves tasks matching the filter in insertion order
func (s *Store) ListTasks(filter TaskFilter) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.PriorityLevel != nil {
		query += " AND priority_level = ?"
		args = append(args, *filter.PriorityLevel)
	}
	if filter.StartDate != nil {
		query += " AND (soft_deadline >= ? OR hard_deadline >= ?)"
		args = append(args, *filter.StartDate, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND (soft_deadline <= ? OR hard_deadline <= ?)"
		args = append(args, *filter.EndDate, *filter.EndDate)
	}

	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*TaskRecord
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTaskGuarded rewrites a task row only while its status still matches
// expectedStatus, so a concurrent transition cannot be silently overwritten.
// Returns ErrNotFound when the task is gone and ErrConflict when the status
// check failed.
func (s *Store) UpdateTaskGuarded(task *TaskRecord, expectedStatus string) error {
	result, err := s.db.Exec(`
		UPDATE tasks SET
			title = ?, description = ?, type = ?, project_id = ?, status = ?,
			soft_deadline = ?, hard_deadline = ?, priority_mode = ?, priority_level = ?,
			priority_period_start = ?, priority_period_end = ?, tags = ?,
			updated_at = ?, completed_at = ?, failed_at = ?
		WHERE id = ? AND status = ?
	`, task.Title, task.Description, task.Type, task.ProjectID, task.Status,
		nullTime(task.SoftDeadline), nullTime(task.HardDeadline),
		task.PriorityMode, task.PriorityLevel,
		nullTime(task.PriorityPeriodStart), nullTime(task.PriorityPeriodEnd), task.Tags,
		task.UpdatedAt, nullTime(task.CompletedAt), nullTime(task.FailedAt),
		task.ID, expectedStatus)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, task.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
		}
		return fmt.Errorf("task %s: %w", task.ID, ErrConflict)
	}
	return nil
}

// DeleteTask removes a task and all its progress entries in one transaction
func (s *Store) DeleteTask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM task_progress WHERE task_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*TaskRecord, error) {
	var task TaskRecord
	var description, projectID, tags sql.NullString
	var soft, hard, periodStart, periodEnd, completedAt, failedAt sql.NullTime

	err := row.Scan(&task.ID, &task.Title, &description, &task.Type, &projectID, &task.Status,
		&soft, &hard, &task.PriorityMode, &task.PriorityLevel,
		&periodStart, &periodEnd, &tags,
		&task.CreatedAt, &task.UpdatedAt, &completedAt, &failedAt)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.ProjectID = projectID.String
	task.Tags = tags.String
	task.SoftDeadline = timePtr(soft)
	task.HardDeadline = timePtr(hard)
	task.PriorityPeriodStart = timePtr(periodStart)
	task.PriorityPeriodEnd = timePtr(periodEnd)
	task.CompletedAt = timePtr(completedAt)
	task.FailedAt = timePtr(failedAt)

	return &task, nil
}
