package storage

import (
	"context"
	"slices"
	"sync"

	"todo_api/internal/domain"
)

// Memory keeps the collection in process memory. Reads return a snapshot,
// so callers never observe a concurrent Write half-way.
type Memory struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// NewMemory returns a Memory backend seeded with tasks.
func NewMemory(tasks ...domain.Task) *Memory {
	return &Memory{tasks: slices.Clone(tasks)}
}

func (m *Memory) Read(_ context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tasks == nil {
		return []domain.Task{}, nil
	}
	return slices.Clone(m.tasks), nil
}

func (m *Memory) Write(_ context.Context, tasks []domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = slices.Clone(tasks)
	return nil
}
