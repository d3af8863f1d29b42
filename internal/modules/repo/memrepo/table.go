package memrepo

import (
	"sync"

	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// table keeps rows in insertion order. Every row handed in or out is cloned,
// so callers never share memory with the table.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]*T
	order []uuid.UUID
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*T), clone: clone}
}

// insert stores row under id. conflicts, when set, is asked about every stored row
// and a true answer rejects the insert with gorm.ErrDuplicatedKey.
func (t *table[T]) insert(id uuid.UUID, row *T, conflicts func(existing *T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; ok {
		return gorm.ErrDuplicatedKey
	}
	if conflicts != nil {
		for _, existing := range t.rows {
			if conflicts(existing) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t.clone(row), nil
}

// find returns the first row in insertion order that matches.
func (t *table[T]) find(match func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return t.clone(row), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// list returns clones of matching rows in insertion order. A nil keep matches everything.
func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// update applies mutate to a copy of the row and swaps it in only when mutate
// succeeds and the result does not conflict with another row.
func (t *table[T]) update(id uuid.UUID, mutate repo.Mutator[T], conflicts func(updated, existing *T) bool) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	next := t.clone(current)
	if err := mutate(next); err != nil {
		return nil, err
	}
	if conflicts != nil {
		for otherID, existing := range t.rows {
			if otherID != id && conflicts(next, existing) {
				return nil, gorm.ErrDuplicatedKey
			}
		}
	}
	t.rows[id] = next
	return t.clone(next), nil
}
