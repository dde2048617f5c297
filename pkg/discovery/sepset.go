package discovery

import "strings"

type pair struct {
	a, b string
}

func newPair(a, b string) pair {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}

	return pair{a, b}
}

// SepSets stores the separating set found for every removed edge. Lookups are symmetric.
type SepSets struct {
	sets map[pair][]string
}

// NewSepSets creates an empty store.
func NewSepSets() SepSets {
	return SepSets{sets: make(map[pair][]string)}
}

// Set records s as the separating set of a and b.
func (s SepSets) Set(a, b string, set []string) {
	s.sets[newPair(a, b)] = append([]string{}, set...)
}

// Get returns the separating set of a and b.
func (s SepSets) Get(a, b string) ([]string, bool) {
	set, ok := s.sets[newPair(a, b)]

	return set, ok
}

// Contains reports whether n belongs to the separating set of a and b.
func (s SepSets) Contains(a, b, n string) bool {
	set, _ := s.Get(a, b)
	for _, m := range set {
		if m == n {
			return true
		}
	}

	return false
}

// Len returns the number of separated pairs.
func (s SepSets) Len() int {
	return len(s.sets)
}
