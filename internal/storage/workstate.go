package storage

import (
	"database/sql"
)

// UpsertWorkState saves the self assessment for a calendar day, replacing
// any existing row for that date. An existing row keeps its id; the record's
// ID field is rewritten to whatever the row actually carries.
func (s *Store) UpsertWorkState(state *WorkStateRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO work_state (id, date, self_rating, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET self_rating = excluded.self_rating, notes = excluded.notes
	`, state.ID, state.Date, state.SelfRating, state.Notes)
	if err != nil {
		return err
	}

	return s.db.QueryRow(`SELECT id FROM work_state WHERE date = ?`, state.Date).Scan(&state.ID)
}

// GetWorkState retrieves the work state for a date, or ErrNotFound
func (s *Store) GetWorkState(date string) (*WorkStateRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, date, self_rating, notes FROM work_state WHERE date = ?
	`, date)

	var state WorkStateRecord
	var notes sql.NullString
	if err := row.Scan(&state.ID, &state.Date, &state.SelfRating, &notes); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	state.Notes = notes.String
	return &state, nil
}

// ListWorkStates retrieves work states with date in [from, to], oldest first.
// Empty bounds impose no constraint.
func (s *Store) ListWorkStates(from, to string) ([]*WorkStateRecord, error) {
	query := `SELECT id, date, self_rating, notes FROM work_state WHERE 1=1`
	var args []any

	if from != "" {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []*WorkStateRecord
	for rows.Next() {
		var state WorkStateRecord
		var notes sql.NullString
		if err := rows.Scan(&state.ID, &state.Date, &state.SelfRating, &notes); err != nil {
			return nil, err
		}
		state.Notes = notes.String
		states = append(states, &state)
	}
	return states, rows.Err()
}
