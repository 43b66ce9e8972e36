package index

import (
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
	"github.com/specialistvlad/topicmapgo/internal/scopestore"
)

// Scoped answers which names, occurrences, variants and associations are
// valid in which themes. Variants are matched on their effective scope.
type Scoped struct {
	src Source
}

// Themes returns every topic used as a theme by a construct of kind.
func (x *Scoped) Themes(kind construct.Kind) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		set := construct.IDSet{}
		for _, sc := range s.Scopes.Scopes() {
			if len(ofKind(s.Scopes.Scoped(sc), kind)) == 0 {
				continue
			}
			for _, t := range sc.Themes() {
				set.Add(t)
			}
		}
		out = set.Sorted()
	})
	return out
}

// Unscoped returns the constructs of kind in the unconstrained scope.
func (x *Scoped) Unscoped(kind construct.Kind) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = ofKind(s.Scopes.Scoped(scopestore.Empty()), kind)
	})
	return out
}

// ByTheme returns the constructs of kind whose scope contains theme.
func (x *Scoped) ByTheme(kind construct.Kind, theme construct.ID) []construct.ID {
	theme = x.src.Current(theme)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = byTheme(s, kind, theme).Sorted()
	})
	return out
}

// ByThemes returns the constructs of kind whose scope contains any of
// themes, or all of them when matchAll is set. No themes selects the
// unconstrained scope.
func (x *Scoped) ByThemes(kind construct.Kind, matchAll bool, themes ...construct.ID) []construct.ID {
	if len(themes) == 0 {
		return x.Unscoped(kind)
	}
	themes = current(x.src, themes)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		sets := make([]construct.IDSet, len(themes))
		for i, theme := range themes {
			sets[i] = byTheme(s, kind, theme)
		}
		out = combine(sets, matchAll)
	})
	return out
}

func byTheme(s *engine.Stores, kind construct.Kind, theme construct.ID) construct.IDSet {
	set := construct.IDSet{}
	for _, sc := range s.Scopes.ScopesContainingTheme(theme) {
		for _, id := range ofKind(s.Scopes.Scoped(sc), kind) {
			set.Add(id)
		}
	}
	return set
}
