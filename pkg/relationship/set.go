package relationship

import (
	"maps"
	"slices"
)

// Set is a set of usernames.
type Set map[string]struct{}

func NewSet(usernames ...string) Set {
	s := make(Set, len(usernames))
	for _, u := range usernames {
		s.Add(u)
	}
	return s
}

func (s Set) Add(username string) {
	s[username] = struct{}{}
}

func (s Set) Has(username string) bool {
	_, ok := s[username]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Equal reports whether s and other hold the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for u := range s {
		if !other.Has(u) {
			return false
		}
	}
	return true
}
