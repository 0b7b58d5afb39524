package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store errors surfaced to the engine for taxonomy mapping
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record changed concurrently")
)

// Store handles SQLite persistence for tasks, progress entries and work states
type Store struct {
	db *sql.DB
}

// TaskRecord represents a task row
type TaskRecord struct {
	ID                  string
	Title               string
	Description         string
	Type                string
	ProjectID           string
	Status              string
	SoftDeadline        *time.Time
	HardDeadline        *time.Time
	PriorityMode        string
	PriorityLevel       int
	PriorityPeriodStart *time.Time
	PriorityPeriodEnd   *time.Time
	Tags                string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
	FailedAt            *time.Time
}

// ProgressRecord represents a progress entry row
type ProgressRecord struct {
	ID            string
	TaskID        string
	Timestamp     time.Time
	ProgressValue int
	EffortScore   int
	Comment       string
}

// WorkStateRecord represents a daily work state row
type WorkStateRecord struct {
	ID         string
	Date       string // YYYY-MM-DD, unique
	SelfRating int
	Notes      string
}

// TaskFilter selects task rows; zero values impose no constraint
type TaskFilter struct {
	Status        string
	Type          string
	PriorityLevel *int
	StartDate     *time.Time
	EndDate       *time.Time
}

// NewStore opens (creating if necessary) the planner database
func NewStore(dbPath string) (*Store, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the necessary tables
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			project_id TEXT,
			status TEXT NOT NULL DEFAULT 'planned',
			soft_deadline DATETIME,
			hard_deadline DATETIME,
			priority_mode TEXT NOT NULL DEFAULT 'none',
			priority_level INTEGER NOT NULL DEFAULT 0,
			priority_period_start DATETIME,
			priority_period_end DATETIME,
			tags TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			completed_at DATETIME,
			failed_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS task_progress (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			progress_value INTEGER NOT NULL,
			effort_score INTEGER NOT NULL,
			comment TEXT,
			FOREIGN KEY (task_id) REFERENCES tasks(id)
		);

		CREATE TABLE IF NOT EXISTS work_state (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL UNIQUE,
			self_rating INTEGER NOT NULL,
			notes TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
		CREATE INDEX IF NOT EXISTS idx_tasks_type ON tasks(type);
		CREATE INDEX IF NOT EXISTS idx_progress_task ON task_progress(task_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GenerateID creates a new UUID for a record
func GenerateID() string {
	return uuid.New().String()
}

// nullTime converts an optional time for storage
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// timePtr converts a scanned nullable time back to an optional time
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	ts := t.Time
	return &ts
}
