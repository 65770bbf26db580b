package repository

import (
	"fmt"
	"sync"
)

// memoryTable is an insertion-ordered, mutex-guarded map of records.
// Records are cloned on the way in and out so callers never share memory
// with stored state.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]*T
	clone func(*T) *T
}

func newMemoryTable[T any](clone func(*T) *T) *memoryTable[T] {
	return &memoryTable[T]{
		rows:  make(map[string]*T),
		clone: clone,
	}
}

func (t *memoryTable[T]) insert(id string, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == "" {
		return fmt.Errorf("record id is empty")
	}
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("record %s already exists", id)
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *memoryTable[T]) get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(row), true
}

func (t *memoryTable[T]) replace(id string, row *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = t.clone(row)
	return true
}

func (t *memoryTable[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *memoryTable[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.clone(t.rows[id]))
	}
	return out
}

// mutateAll applies fn to every stored record in place and returns how many
// records fn reported as changed.
func (t *memoryTable[T]) mutateAll(fn func(*T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := 0
	for _, id := range t.order {
		if fn(t.rows[id]) {
			changed++
		}
	}
	return changed
}
