// Package typedstore holds the type attribute of names, occurrences,
// associations and roles. A typed construct has exactly one type for its
// whole life; there is no observable "untyped" state.
package typedstore

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Retyped is one type edge rewritten by Replace.
type Retyped struct {
	Construct construct.Ref
	Old       construct.ID
	New       construct.ID
}

// Store is the typed relation of one topic map.
type Store struct {
	typeOf  map[construct.ID]construct.ID
	kindOf  map[construct.ID]construct.Kind
	typedBy map[construct.ID]map[construct.Kind]construct.IDSet
}

// New creates an empty typed store.
func New() *Store {
	return &Store{
		typeOf:  make(map[construct.ID]construct.ID),
		kindOf:  make(map[construct.ID]construct.Kind),
		typedBy: make(map[construct.ID]map[construct.Kind]construct.IDSet),
	}
}

// SetType sets the type of a typed construct and returns the previous type
// (NoID on first assignment).
func (s *Store) SetType(ref construct.Ref, typ construct.ID) (construct.ID, error) {
	if !ref.Kind.IsTyped() {
		return construct.NoID, fmt.Errorf("%w: %s is not typed", construct.ErrUnsupported, ref.Kind)
	}
	if typ == construct.NoID {
		return construct.NoID, fmt.Errorf("%w: %s requires a type", construct.ErrModelConstraint, ref)
	}
	old := s.typeOf[ref.ID]
	if old == typ {
		return old, nil
	}
	if old != construct.NoID {
		s.unlink(ref.ID, old)
	}
	s.typeOf[ref.ID] = typ
	s.kindOf[ref.ID] = ref.Kind
	s.link(ref, typ)
	return old, nil
}

func (s *Store) link(ref construct.Ref, typ construct.ID) {
	if s.typedBy[typ] == nil {
		s.typedBy[typ] = make(map[construct.Kind]construct.IDSet)
	}
	if s.typedBy[typ][ref.Kind] == nil {
		s.typedBy[typ][ref.Kind] = construct.IDSet{}
	}
	s.typedBy[typ][ref.Kind].Add(ref.ID)
}

func (s *Store) unlink(id, typ construct.ID) {
	kind := s.kindOf[id]
	byKind := s.typedBy[typ]
	byKind[kind].Remove(id)
	if byKind[kind].Len() == 0 {
		delete(byKind, kind)
	}
	if len(byKind) == 0 {
		delete(s.typedBy, typ)
	}
}

// Type returns the type of id. An unset type is a precondition violation:
// every registered typed construct has one.
func (s *Store) Type(id construct.ID) (construct.ID, error) {
	typ, ok := s.typeOf[id]
	if !ok {
		return construct.NoID, construct.Unknown("typed construct", id)
	}
	return typ, nil
}

// TypedBy returns the constructs of kind typed by typ.
func (s *Store) TypedBy(typ construct.ID, kind construct.Kind) []construct.ID {
	return s.typedBy[typ][kind].Sorted()
}

// IsUsedAsType reports whether any construct is typed by typ.
func (s *Store) IsUsedAsType(typ construct.ID) bool {
	return len(s.typedBy[typ]) > 0
}

// Types returns every topic used as the type of a construct of kind.
func (s *Store) Types(kind construct.Kind) []construct.ID {
	set := construct.IDSet{}
	for typ, byKind := range s.typedBy {
		if byKind[kind].Len() > 0 {
			set.Add(typ)
		}
	}
	return set.Sorted()
}

// Remove dissolves the type edge of id when the construct is destroyed.
func (s *Store) Remove(id construct.ID) {
	typ, ok := s.typeOf[id]
	if !ok {
		return
	}
	s.unlink(id, typ)
	delete(s.typeOf, id)
	delete(s.kindOf, id)
}

// RemoveType removes topic as the type of every construct using it and
// returns those constructs. They are left untyped; the caller must retype
// or delete each of them before the operation completes.
func (s *Store) RemoveType(topic construct.ID) []construct.Ref {
	orphans := s.typedRefs(topic)
	for _, ref := range orphans {
		delete(s.typeOf, ref.ID)
		delete(s.kindOf, ref.ID)
	}
	delete(s.typedBy, topic)
	return orphans
}

// Replace points every construct typed by topic at replacement. Only the
// merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) []Retyped {
	if topic == replacement {
		return nil
	}
	refs := s.typedRefs(topic)
	out := make([]Retyped, 0, len(refs))
	for _, ref := range refs {
		s.unlink(ref.ID, topic)
		s.typeOf[ref.ID] = replacement
		s.link(ref, replacement)
		out = append(out, Retyped{Construct: ref, Old: topic, New: replacement})
	}
	return out
}

func (s *Store) typedRefs(topic construct.ID) []construct.Ref {
	var refs []construct.Ref
	for _, kind := range construct.Kinds {
		for _, id := range s.typedBy[topic][kind].Sorted() {
			refs = append(refs, construct.Ref{Kind: kind, ID: id})
		}
	}
	return refs
}
