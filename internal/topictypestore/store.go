// Package topictypestore holds the type-instance and supertype-subtype
// relations between topics.
//
// Both relations may contain cycles after importing malformed data. Every
// transitive query walks breadth-first with a visited set seeded with the
// query topic, so it terminates and returns the same answer on every call.
package topictypestore

import "github.com/specialistvlad/topicmapgo/internal/construct"

// EdgeKind distinguishes the two relations.
type EdgeKind uint8

const (
	TypeInstance EdgeKind = iota
	SupertypeSubtype
)

func (k EdgeKind) String() string {
	if k == TypeInstance {
		return "type_instance"
	}
	return "supertype_subtype"
}

// Edge is a single relation edge. For TypeInstance, From is the instance and
// To the type; for SupertypeSubtype, From is the subtype and To the supertype.
type Edge struct {
	Kind EdgeKind
	From construct.ID
	To   construct.ID
}

// relation is a directed edge set with its reverse.
type relation struct {
	out map[construct.ID]construct.IDSet
	in  map[construct.ID]construct.IDSet
}

func newRelation() relation {
	return relation{
		out: make(map[construct.ID]construct.IDSet),
		in:  make(map[construct.ID]construct.IDSet),
	}
}

func (r relation) add(from, to construct.ID) bool {
	if r.out[from].Has(to) {
		return false
	}
	if r.out[from] == nil {
		r.out[from] = construct.IDSet{}
	}
	if r.in[to] == nil {
		r.in[to] = construct.IDSet{}
	}
	r.out[from].Add(to)
	r.in[to].Add(from)
	return true
}

func (r relation) remove(from, to construct.ID) bool {
	if !r.out[from].Has(to) {
		return false
	}
	r.out[from].Remove(to)
	if r.out[from].Len() == 0 {
		delete(r.out, from)
	}
	r.in[to].Remove(from)
	if r.in[to].Len() == 0 {
		delete(r.in, to)
	}
	return true
}

// edgesOf lists every edge touching topic.
func (r relation) edgesOf(kind EdgeKind, topic construct.ID) []Edge {
	var edges []Edge
	for _, to := range r.out[topic].Sorted() {
		edges = append(edges, Edge{Kind: kind, From: topic, To: to})
	}
	for _, from := range r.in[topic].Sorted() {
		if from == topic {
			continue // self loop already listed
		}
		edges = append(edges, Edge{Kind: kind, From: from, To: topic})
	}
	return edges
}

// Store holds both topic relations of one topic map.
type Store struct {
	types  relation // instance -> types
	supers relation // subtype -> supertypes
}

// New creates an empty store.
func New() *Store {
	return &Store{types: newRelation(), supers: newRelation()}
}

// AddType records instance as an instance of typ. It reports whether the
// edge is new.
func (s *Store) AddType(instance, typ construct.ID) bool { return s.types.add(instance, typ) }

// RemoveType removes the type-instance edge.
func (s *Store) RemoveType(instance, typ construct.ID) bool { return s.types.remove(instance, typ) }

// AddSupertype records super as a supertype of sub.
func (s *Store) AddSupertype(sub, super construct.ID) bool { return s.supers.add(sub, super) }

// RemoveSupertype removes the supertype-subtype edge.
func (s *Store) RemoveSupertype(sub, super construct.ID) bool { return s.supers.remove(sub, super) }

// DirectTypes returns the types instance was given directly.
func (s *Store) DirectTypes(instance construct.ID) []construct.ID {
	return s.types.out[instance].Sorted()
}

// DirectInstances returns the topics typed directly by typ.
func (s *Store) DirectInstances(typ construct.ID) []construct.ID {
	return s.types.in[typ].Sorted()
}

// DirectSupertypes returns the direct supertypes of sub.
func (s *Store) DirectSupertypes(sub construct.ID) []construct.ID {
	return s.supers.out[sub].Sorted()
}

// DirectSubtypes returns the direct subtypes of super.
func (s *Store) DirectSubtypes(super construct.ID) []construct.ID {
	return s.supers.in[super].Sorted()
}

// TopicTypes returns every topic used as a topic type.
func (s *Store) TopicTypes() []construct.ID {
	set := construct.IDSet{}
	for typ := range s.types.in {
		set.Add(typ)
	}
	return set.Sorted()
}

// Supertypes returns the transitive supertypes of topic. topic itself is
// included only if a cycle leads back to it.
func (s *Store) Supertypes(topic construct.ID) []construct.ID {
	return closure([]construct.ID{topic}, s.supers.out, true).Sorted()
}

// Subtypes returns the transitive subtypes of topic.
func (s *Store) Subtypes(topic construct.ID) []construct.ID {
	return closure([]construct.ID{topic}, s.supers.in, true).Sorted()
}

// Types returns the direct types of instance and all their supertypes.
func (s *Store) Types(instance construct.ID) []construct.ID {
	direct := s.types.out[instance].Sorted()
	result := closure(direct, s.supers.out, false)
	for _, t := range direct {
		result.Add(t)
	}
	return result.Sorted()
}

// Instances returns the direct instances of typ and of all its subtypes.
func (s *Store) Instances(typ construct.ID) []construct.ID {
	types := append([]construct.ID{typ}, s.Subtypes(typ)...)
	result := construct.IDSet{}
	for _, t := range types {
		for inst := range s.types.in[t] {
			result.Add(inst)
		}
	}
	return result.Sorted()
}

// closure walks next breadth-first from seeds. Seeds are marked visited up
// front; when seedsAreQuery is set they are not part of the result unless an
// edge reaches them.
func closure(seeds []construct.ID, next map[construct.ID]construct.IDSet, seedsAreQuery bool) construct.IDSet {
	visited := construct.NewIDSet(seeds...)
	result := construct.IDSet{}
	if !seedsAreQuery {
		for _, s := range seeds {
			result.Add(s)
		}
	}
	frontier := seeds
	for len(frontier) > 0 {
		var nextFrontier []construct.ID
		for _, t := range frontier {
			for n := range next[t] {
				result.Add(n)
				if visited.Has(n) {
					continue
				}
				visited.Add(n)
				nextFrontier = append(nextFrontier, n)
			}
		}
		frontier = nextFrontier
	}
	return result
}

// IsRelated reports whether topic takes part in any edge.
func (s *Store) IsRelated(topic construct.ID) bool {
	return s.types.out[topic].Len() > 0 || s.types.in[topic].Len() > 0 ||
		s.supers.out[topic].Len() > 0 || s.supers.in[topic].Len() > 0
}

// IsUsedByOthers reports whether topic is a type or supertype of some other
// topic.
func (s *Store) IsUsedByOthers(topic construct.ID) bool {
	for inst := range s.types.in[topic] {
		if inst != topic {
			return true
		}
	}
	for sub := range s.supers.in[topic] {
		if sub != topic {
			return true
		}
	}
	return false
}

// RemoveTopic drops every edge touching topic and returns them.
func (s *Store) RemoveTopic(topic construct.ID) []Edge {
	edges := append(s.types.edgesOf(TypeInstance, topic), s.supers.edgesOf(SupertypeSubtype, topic)...)
	for _, e := range edges {
		s.relation(e.Kind).remove(e.From, e.To)
	}
	return edges
}

func (s *Store) relation(kind EdgeKind) relation {
	if kind == TypeInstance {
		return s.types
	}
	return s.supers
}

// Replace moves every edge of topic onto replacement, in both directions
// and both relations, and returns the edges as they read afterwards. Edges
// replacement already had are not reported. Only the merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) []Edge {
	if topic == replacement {
		return nil
	}
	var out []Edge
	for _, e := range s.RemoveTopic(topic) {
		from, to := e.From, e.To
		if from == topic {
			from = replacement
		}
		if to == topic {
			to = replacement
		}
		if s.relation(e.Kind).add(from, to) {
			out = append(out, Edge{Kind: e.Kind, From: from, To: to})
		}
	}
	return out
}
