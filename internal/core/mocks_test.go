package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/virhant/planner/internal/storage"
)

// Common test errors
var (
	ErrMockStorage = errors.New("mock storage error")
)

// MockTaskStorage implements TaskStorage for testing, backed by a map
type MockTaskStorage struct {
	mu          sync.Mutex
	Tasks       map[string]*storage.TaskRecord
	order       []string
	SaveFunc    func(task *storage.TaskRecord) error
	ListFunc    func(filter storage.TaskFilter) ([]*storage.TaskRecord, error)
	UpdateFunc  func(task *storage.TaskRecord, expectedStatus string) error
	FailOnSave  bool
	DeleteCalls []string
}

func NewMockTaskStorage() *MockTaskStorage {
	return &MockTaskStorage{Tasks: make(map[string]*storage.TaskRecord)}
}

func (m *MockTaskStorage) SaveTask(task *storage.TaskRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(task)
	}
	if m.FailOnSave {
		return ErrMockStorage
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	m.order = append(m.order, task.ID)
	return nil
}

func (m *MockTaskStorage) GetTask(id string) (*storage.TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	copied := *task
	return &copied, nil
}

func (m *MockTaskStorage) ListTasks(filter storage.TaskFilter) ([]*storage.TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListFunc != nil {
		return m.ListFunc(filter)
	}

	var records []*storage.TaskRecord
	for _, id := range m.order {
		task, ok := m.Tasks[id]
		if !ok {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Type != "" && task.Type != filter.Type {
			continue
		}
		if filter.PriorityLevel != nil && task.PriorityLevel != *filter.PriorityLevel {
			continue
		}
		copied := *task
		records = append(records, &copied)
	}
	return records, nil
}

func (m *MockTaskStorage) UpdateTaskGuarded(task *storage.TaskRecord, expectedStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateFunc != nil {
		return m.UpdateFunc(task, expectedStatus)
	}

	existing, ok := m.Tasks[task.ID]
	if !ok {
		return fmt.Errorf("task %s: %w", task.ID, storage.ErrNotFound)
	}
	if existing.Status != expectedStatus {
		return fmt.Errorf("task %s: %w", task.ID, storage.ErrConflict)
	}
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

func (m *MockTaskStorage) DeleteTask(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	delete(m.Tasks, id)
	m.DeleteCalls = append(m.DeleteCalls, id)
	return nil
}

// MockProgressStorage implements ProgressStorage for testing
type MockProgressStorage struct {
	mu       sync.Mutex
	Entries  []*storage.ProgressRecord
	SaveFunc func(entry *storage.ProgressRecord) error
}

func NewMockProgressStorage() *MockProgressStorage {
	return &MockProgressStorage{}
}

func (m *MockProgressStorage) SaveProgress(entry *storage.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(entry)
	}
	copied := *entry
	m.Entries = append(m.Entries, &copied)
	return nil
}

func (m *MockProgressStorage) ListProgress(taskID string) ([]*storage.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*storage.ProgressRecord
	for _, e := range m.Entries {
		if e.TaskID == taskID {
			copied := *e
			records = append(records, &copied)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (m *MockProgressStorage) ListProgressAll() ([]*storage.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*storage.ProgressRecord, len(m.Entries))
	for i, e := range m.Entries {
		copied := *e
		records[i] = &copied
	}
	return records, nil
}

// MockWorkStateStorage implements WorkStateStorage for testing
type MockWorkStateStorage struct {
	mu     sync.Mutex
	States map[string]*storage.WorkStateRecord // keyed by date
}

func NewMockWorkStateStorage() *MockWorkStateStorage {
	return &MockWorkStateStorage{States: make(map[string]*storage.WorkStateRecord)}
}

func (m *MockWorkStateStorage) UpsertWorkState(state *storage.WorkStateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Matches the real store: an existing date keeps its row id, and the
	// persisted id is written back into the record.
	if existing, ok := m.States[state.Date]; ok {
		state.ID = existing.ID
	}
	copied := *state
	m.States[state.Date] = &copied
	return nil
}

func (m *MockWorkStateStorage) ListWorkStates(from, to string) ([]*storage.WorkStateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*storage.WorkStateRecord
	for date, state := range m.States {
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		copied := *state
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

// MockIDGenerator hands out sequential IDs
type MockIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (m *MockIDGenerator) GenerateID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// newTestEngine builds an engine on mock storage with a fixed clock
func newTestEngine(now time.Time, allowReopen bool) (*Engine, *MockTaskStorage, *MockProgressStorage, *MockWorkStateStorage) {
	tasks := NewMockTaskStorage()
	progress := NewMockProgressStorage()
	workStates := NewMockWorkStateStorage()

	engine := NewEngineWithDeps(EngineDeps{
		Tasks:      tasks,
		Progress:   progress,
		WorkStates: workStates,
		Guard:      TransitionGuard{AllowReopen: allowReopen},
		IDs:        &MockIDGenerator{},
		Clock:      func() time.Time { return now },
	})

	return engine, tasks, progress, workStates
}
