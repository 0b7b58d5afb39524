package storage

import (
	"testing"
	"time"
)

func TestListProgressReturnsOldestFirst(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedTestTasks(t, store, []*TaskRecord{makeTestTask("t1", "task_short", "in_progress", base)})

	// Insert out of chronological order; the list must come back sorted.
	entries := []*ProgressRecord{
		{ID: "p2", TaskID: "t1", Timestamp: base.Add(2 * time.Hour), ProgressValue: 60, EffortScore: 4, Comment: "afternoon"},
		{ID: "p1", TaskID: "t1", Timestamp: base.Add(time.Hour), ProgressValue: 30, EffortScore: 2},
		{ID: "p3", TaskID: "t1", Timestamp: base.Add(3 * time.Hour), ProgressValue: 90, EffortScore: 5},
	}
	for _, e := range entries {
		if err := store.SaveProgress(e); err != nil {
			t.Fatalf("Failed to save progress %s: %v", e.ID, err)
		}
	}

	got, err := store.ListProgress("t1")
	if err != nil {
		t.Fatalf("Failed to list progress: %v", err)
	}

	wantIDs := []string{"p1", "p2", "p3"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Expected %d entries, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[1].Comment != "afternoon" {
		t.Errorf("Expected comment round trip, got %q", got[1].Comment)
	}
	if got[0].Comment != "" {
		t.Errorf("Expected empty comment for p1, got %q", got[0].Comment)
	}
}

func TestListProgressEmptyForUnknownTask(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	got, err := store.ListProgress("missing")
	if err != nil {
		t.Fatalf("Failed to list progress: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no entries, got %d", len(got))
	}
}

func TestListProgressAllSpansTasks(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	seedTestTasks(t, store, []*TaskRecord{
		makeTestTask("t1", "task_short", "in_progress", base),
		makeTestTask("t2", "task_long", "in_progress", base),
	})

	entries := []*ProgressRecord{
		{ID: "p1", TaskID: "t1", Timestamp: base.Add(time.Hour), ProgressValue: 30, EffortScore: 2},
		{ID: "p2", TaskID: "t2", Timestamp: base.Add(2 * time.Hour), ProgressValue: 10, EffortScore: 1},
	}
	for _, e := range entries {
		if err := store.SaveProgress(e); err != nil {
			t.Fatalf("Failed to save progress %s: %v", e.ID, err)
		}
	}

	got, err := store.ListProgressAll()
	if err != nil {
		t.Fatalf("Failed to list all progress: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 entries across tasks, got %d", len(got))
	}
}
