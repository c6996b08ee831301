package catalog

import (
	"cmp"
	"context"
	"slices"
)

// Memory is a Lookup over a fixed, ordered set of entities.
// It is safe for concurrent use; the entities are copied on construction.
type Memory[E Entity] struct {
	entities []E
}

// NewMemory returns a Memory catalog. Entities are stably sorted by position,
// so equal positions keep their given order. Entities with a zero ID get
// their 1-based index as ID.
func NewMemory[E Entity](entities ...E) *Memory[E] {
	list := slices.Clone(entities)
	slices.SortStableFunc(list, func(a, b E) int {
		return cmp.Compare(a.entry().Position, b.entry().Position)
	})
	for i := range list {
		list[i] = withID(list[i], int64(i+1))
	}
	return &Memory[E]{entities: list}
}

// FindActive returns the active entity with the given code.
func (m *Memory[E]) FindActive(_ context.Context, code string) (E, error) {
	if e, ok := findActive(m.entities, code); ok {
		return e, nil
	}
	var zero E
	return zero, ErrNotFound
}

// Default returns the first active entity flagged default.
func (m *Memory[E]) Default(_ context.Context) (E, error) {
	if e, ok := findDefault(m.entities); ok {
		return e, nil
	}
	var zero E
	return zero, ErrNotFound
}

// List returns a copy of all entities in catalog order.
func (m *Memory[E]) List(_ context.Context) ([]E, error) {
	return slices.Clone(m.entities), nil
}

func withID[E Entity](e E, id int64) E {
	if e.entry().ID != 0 {
		return e
	}
	switch v := any(e).(type) {
	case Locale:
		v.ID = id
		return any(v).(E)
	case Currency:
		v.ID = id
		return any(v).(E)
	}
	return e
}
