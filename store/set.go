package store

import "sort"

// PathSet holds store path identifiers, one entry per path basename.
// Identifiers are opaque, only equality matters.
type PathSet map[string]struct{}

// NewPathSet returns a set holding ids.
func NewPathSet(ids ...string) PathSet {
	s := make(PathSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s PathSet) Add(id string) {
	s[id] = struct{}{}
}

func (s PathSet) Has(id string) bool {
	_, exists := s[id]
	return exists
}

// Sorted returns the identifiers in lexical order.
func (s PathSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
