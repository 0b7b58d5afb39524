package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a SQLite database in a temp dir for testing
func createTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "planner-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// seedTestTasks inserts task rows into the store for testing
func seedTestTasks(t *testing.T, store *Store, tasks []*TaskRecord) {
	t.Helper()
	for _, task := range tasks {
		if err := store.SaveTask(task); err != nil {
			t.Fatalf("Failed to seed task %s: %v", task.ID, err)
		}
	}
}

// makeTestTask creates a TaskRecord with sensible defaults
func makeTestTask(id, taskType, status string, createdAt time.Time) *TaskRecord {
	return &TaskRecord{
		ID:           id,
		Title:        "Task " + id,
		Description:  "Description for " + id,
		Type:         taskType,
		Status:       status,
		PriorityMode: "none",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestNewStoreReopensExistingDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "planner-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create Store: %v", err)
	}

	created := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedTestTasks(t, store, []*TaskRecord{makeTestTask("t1", "task_short", "planned", created)})
	store.Close()

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen Store: %v", err)
	}
	defer reopened.Close()

	task, err := reopened.GetTask("t1")
	if err != nil {
		t.Fatalf("Failed to get task after reopen: %v", err)
	}
	if task.Title != "Task t1" {
		t.Errorf("Expected title 'Task t1', got %q", task.Title)
	}
}

func TestGenerateIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if id == "" {
			t.Fatal("Expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("Duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
