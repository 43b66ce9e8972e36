package scopestore

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Scope is an immutable, canonical set of theme topics. Within one Store two
// scopes with the same themes are the same *Scope, so scopes compare with ==.
type Scope struct {
	themes []construct.ID
	key    string
}

var (
	emptyOnce  sync.Once
	emptyScope *Scope
)

// Empty returns the process-wide empty scope (the unconstrained scope).
func Empty() *Scope {
	emptyOnce.Do(func() {
		emptyScope = &Scope{}
	})
	return emptyScope
}

// Themes returns a copy of the theme handles in ascending order.
func (s *Scope) Themes() []construct.ID {
	return slices.Clone(s.themes)
}

// Len returns the number of themes.
func (s *Scope) Len() int { return len(s.themes) }

// IsEmpty reports whether s is the unconstrained scope.
func (s *Scope) IsEmpty() bool { return len(s.themes) == 0 }

// Contains reports whether theme is a member of s.
func (s *Scope) Contains(theme construct.ID) bool {
	_, found := slices.BinarySearch(s.themes, theme)
	return found
}

// ContainsAll reports whether every theme of other is in s.
func (s *Scope) ContainsAll(other *Scope) bool {
	for _, t := range other.themes {
		if !s.Contains(t) {
			return false
		}
	}
	return true
}

func (s *Scope) String() string {
	return "{" + s.key + "}"
}

// canonical sorts and deduplicates themes and computes the lookup key.
func canonical(themes []construct.ID) ([]construct.ID, string) {
	sorted := slices.Clone(themes)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	sorted = slices.DeleteFunc(sorted, func(id construct.ID) bool { return id == construct.NoID })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return sorted, strings.Join(parts, ",")
}
