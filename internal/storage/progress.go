package storage

import (
	"database/sql"
)

// SaveProgress appends a progress entry. Entries are never updated or
// deleted individually; removal happens only through task deletion.
func (s *Store) SaveProgress(entry *ProgressRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO task_progress (id, task_id, timestamp, progress_value, effort_score, comment)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.TaskID, entry.Timestamp, entry.ProgressValue, entry.EffortScore, entry.Comment)

	return err
}

// ListProgress retrieves the progress entries for a task, oldest first
func (s *Store) ListProgress(taskID string) ([]*ProgressRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, timestamp, progress_value, effort_score, comment
		FROM task_progress
		WHERE task_id = ?
		ORDER BY timestamp ASC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProgressRows(rows)
}

// ListProgressAll retrieves every progress entry, for analytics scans
func (s *Store) ListProgressAll() ([]*ProgressRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, timestamp, progress_value, effort_score, comment
		FROM task_progress
		ORDER BY timestamp ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProgressRows(rows)
}

func scanProgressRows(rows *sql.Rows) ([]*ProgressRecord, error) {
	var entries []*ProgressRecord
	for rows.Next() {
		var entry ProgressRecord
		var comment sql.NullString

		err := rows.Scan(&entry.ID, &entry.TaskID, &entry.Timestamp,
			&entry.ProgressValue, &entry.EffortScore, &comment)
		if err != nil {
			return nil, err
		}

		entry.Comment = comment.String
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
