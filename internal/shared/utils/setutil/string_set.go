// Package setutil provides set utilities for common key collection patterns.
package setutil

// StringSet is a set of string keys.
// It uses map[string]struct{} internally for memory efficiency.
type StringSet struct {
	items map[string]struct{}
}

// NewStringSet creates a new empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{
		items: make(map[string]struct{}),
	}
}

// NewStringSetWithCap creates a new StringSet with initial capacity.
func NewStringSetWithCap(cap int) *StringSet {
	return &StringSet{
		items: make(map[string]struct{}, cap),
	}
}

// Add adds a key to the set.
func (s *StringSet) Add(key string) {
	s.items[key] = struct{}{}
}

// Has returns true if the key exists in the set.
func (s *StringSet) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// AddIfAbsent adds the key and reports whether it was newly added.
// It is the single-lookup form of Has-then-Add used by dedup loops.
func (s *StringSet) AddIfAbsent(key string) bool {
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = struct{}{}
	return true
}

// Len returns the number of elements in the set.
func (s *StringSet) Len() int {
	return len(s.items)
}
