package plan

import (
	"fmt"
	"strings"
)

// Store exposes the plan catalog to the pricing views.
type Store interface {
	List() []Plan
	FindByID(id string) (Plan, bool)
	IDs() []string
	Require(id string) (Plan, error)
}

// UnknownPlanError reports a plan id that is not in the catalog.
type UnknownPlanError struct {
	ID        string
	Available []string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown plan %q (available: %s)", e.ID, strings.Join(e.Available, ", "))
}

// MemoryStore is the fixed catalog, kept in display order and indexed by id.
type MemoryStore struct {
	items []Plan
	index map[string]int
}

// NewMemoryStore returns a catalog of the supplied plans. A repeated id keeps
// its first position.
func NewMemoryStore(items []Plan) *MemoryStore {
	s := &MemoryStore{index: make(map[string]int, len(items))}
	for _, item := range items {
		if _, dup := s.index[item.ID]; dup {
			continue
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	return s
}

// List returns the catalog in display order.
func (s *MemoryStore) List() []Plan {
	return append([]Plan(nil), s.items...)
}

// FindByID looks up a plan by identifier.
func (s *MemoryStore) FindByID(id string) (Plan, bool) {
	i, ok := s.index[id]
	if !ok {
		return Plan{}, false
	}
	return s.items[i], true
}

// IDs lists plan identifiers in display order.
func (s *MemoryStore) IDs() []string {
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

// Require is FindByID for checkout: a blank or unknown id is an
// *UnknownPlanError naming the valid choices.
func (s *MemoryStore) Require(id string) (Plan, error) {
	id = strings.TrimSpace(id)
	if p, ok := s.FindByID(id); ok {
		return p, nil
	}
	return Plan{}, &UnknownPlanError{ID: id, Available: s.IDs()}
}
