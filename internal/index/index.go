package index

import (
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
)

// Source is a topic map the indexes read from. *topicmap.TopicMap
// implements it.
type Source interface {
	View(fn func(*engine.Stores))
	Current(id construct.ID) construct.ID
}

// Index bundles the four indexes of one topic map.
type Index struct {
	TypeInstance     *TypeInstance
	Scoped           *Scoped
	Literal          *Literal
	SupertypeSubtype *SupertypeSubtype
}

// New creates the indexes over src.
func New(src Source) *Index {
	return &Index{
		TypeInstance:     &TypeInstance{src: src},
		Scoped:           &Scoped{src: src},
		Literal:          &Literal{src: src},
		SupertypeSubtype: &SupertypeSubtype{src: src},
	}
}

// current resolves ids to their surviving handles. It must run outside
// View; Current takes the map's read lock itself.
func current(src Source, ids []construct.ID) []construct.ID {
	out := make([]construct.ID, len(ids))
	for i, id := range ids {
		out[i] = src.Current(id)
	}
	return out
}

// ofKind keeps the handles of refs with kind, or all of them for
// KindInvalid.
func ofKind(refs []construct.Ref, kind construct.Kind) []construct.ID {
	out := make([]construct.ID, 0, len(refs))
	for _, r := range refs {
		if kind == construct.KindInvalid || r.Kind == kind {
			out = append(out, r.ID)
		}
	}
	return out
}

// intersect returns the handles present in every set, sorted.
func intersect(sets []construct.IDSet) []construct.ID {
	if len(sets) == 0 {
		return nil
	}
	out := construct.IDSet{}
	for id := range sets[0] {
		found := true
		for _, s := range sets[1:] {
			if !s.Has(id) {
				found = false
				break
			}
		}
		if found {
			out.Add(id)
		}
	}
	return out.Sorted()
}

// union returns the handles present in any set, sorted.
func union(sets []construct.IDSet) []construct.ID {
	out := construct.IDSet{}
	for _, s := range sets {
		for id := range s {
			out.Add(id)
		}
	}
	return out.Sorted()
}

func combine(sets []construct.IDSet, matchAll bool) []construct.ID {
	if matchAll {
		return intersect(sets)
	}
	return union(sets)
}
