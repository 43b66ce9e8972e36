// Package identitystore maps the three TMDM identifier kinds to constructs
// and keeps the registry of every construct handle in a topic map.
//
// Lookups of unknown identifiers return (zero, false). Absence is the normal
// outcome merge detection uses to decide between creating a construct and
// reusing an existing one.
package identitystore

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// IdentifierKind selects one of the three identifier relations.
type IdentifierKind uint8

const (
	ItemIdentifier IdentifierKind = iota
	SubjectIdentifier
	SubjectLocator
)

func (k IdentifierKind) String() string {
	switch k {
	case ItemIdentifier:
		return "item_identifier"
	case SubjectIdentifier:
		return "subject_identifier"
	case SubjectLocator:
		return "subject_locator"
	}
	return "unknown"
}

// Identifier is one identifier edge as reported by Replace and RemoveConstruct.
type Identifier struct {
	Kind    IdentifierKind
	Locator construct.Locator
}

// relation is a bijection-checked locator -> owner map with its reverse.
type relation struct {
	owner map[construct.Locator]construct.ID
	of    map[construct.ID]map[construct.Locator]struct{}
}

func newRelation() relation {
	return relation{
		owner: make(map[construct.Locator]construct.ID),
		of:    make(map[construct.ID]map[construct.Locator]struct{}),
	}
}

func (r relation) add(id construct.ID, loc construct.Locator) {
	r.owner[loc] = id
	if r.of[id] == nil {
		r.of[id] = make(map[construct.Locator]struct{})
	}
	r.of[id][loc] = struct{}{}
}

func (r relation) remove(id construct.ID, loc construct.Locator) bool {
	if owner, ok := r.owner[loc]; !ok || owner != id {
		return false
	}
	delete(r.owner, loc)
	delete(r.of[id], loc)
	if len(r.of[id]) == 0 {
		delete(r.of, id)
	}
	return true
}

func (r relation) locators(id construct.ID) []construct.Locator {
	locs := make([]construct.Locator, 0, len(r.of[id]))
	for loc := range r.of[id] {
		locs = append(locs, loc)
	}
	return construct.SortLocators(locs)
}

// Store is the identity registry of one topic map. It is not safe for
// concurrent use; the topic map serializes access.
type Store struct {
	kinds  map[construct.ID]construct.Kind
	byKind map[construct.Kind]construct.IDSet

	iids relation
	sids relation
	slos relation
}

// New creates an empty identity store.
func New() *Store {
	return &Store{
		kinds:  make(map[construct.ID]construct.Kind),
		byKind: make(map[construct.Kind]construct.IDSet),
		iids:   newRelation(),
		sids:   newRelation(),
		slos:   newRelation(),
	}
}

// RegisterID records a new construct handle. Registering the same handle
// twice with a different kind is a precondition violation.
func (s *Store) RegisterID(ref construct.Ref) error {
	if ref.IsZero() || ref.Kind == construct.KindInvalid {
		return fmt.Errorf("%w: cannot register %s", construct.ErrUnsupported, ref)
	}
	if kind, ok := s.kinds[ref.ID]; ok {
		if kind != ref.Kind {
			return fmt.Errorf("%w: %s already registered as %s", construct.ErrUnsupported, ref.ID, kind)
		}
		return nil
	}
	s.kinds[ref.ID] = ref.Kind
	if s.byKind[ref.Kind] == nil {
		s.byKind[ref.Kind] = construct.IDSet{}
	}
	s.byKind[ref.Kind].Add(ref.ID)
	return nil
}

// ByID returns the registered reference for id.
func (s *Store) ByID(id construct.ID) (construct.Ref, bool) {
	kind, ok := s.kinds[id]
	if !ok {
		return construct.Ref{}, false
	}
	return construct.Ref{Kind: kind, ID: id}, true
}

// IsKind reports whether id is registered with the given kind.
func (s *Store) IsKind(id construct.ID, kind construct.Kind) bool {
	k, ok := s.kinds[id]
	return ok && k == kind
}

// IDs returns every registered handle of kind in creation order.
func (s *Store) IDs(kind construct.Kind) []construct.ID {
	return s.byKind[kind].Sorted()
}

// Count returns the number of registered constructs of kind.
func (s *Store) Count(kind construct.Kind) int {
	return s.byKind[kind].Len()
}

// AddItemIdentifier attaches loc to id. It fails when loc already identifies
// a different construct; callers that want merging must check first.
func (s *Store) AddItemIdentifier(id construct.ID, loc construct.Locator) error {
	if _, ok := s.kinds[id]; !ok {
		return construct.Unknown("construct", id)
	}
	if owner, ok := s.iids.owner[loc]; ok {
		if owner == id {
			return nil
		}
		return fmt.Errorf("%w: item identifier %s already held by %s", construct.ErrIdentityConstraint, loc, owner)
	}
	s.iids.add(id, loc)
	return nil
}

// AddSubjectIdentifier attaches loc to topic as a subject identifier.
func (s *Store) AddSubjectIdentifier(topic construct.ID, loc construct.Locator) error {
	return s.addTopicIdentifier(s.sids, "subject identifier", topic, loc)
}

// AddSubjectLocator attaches loc to topic as a subject locator.
func (s *Store) AddSubjectLocator(topic construct.ID, loc construct.Locator) error {
	return s.addTopicIdentifier(s.slos, "subject locator", topic, loc)
}

func (s *Store) addTopicIdentifier(r relation, what string, topic construct.ID, loc construct.Locator) error {
	if !s.IsKind(topic, construct.KindTopic) {
		return construct.Unknown("topic", topic)
	}
	if owner, ok := r.owner[loc]; ok {
		if owner == topic {
			return nil
		}
		return fmt.Errorf("%w: %s %s already held by %s", construct.ErrIdentityConstraint, what, loc, owner)
	}
	r.add(topic, loc)
	return nil
}

// RemoveItemIdentifier detaches loc from id. It reports whether an edge was removed.
func (s *Store) RemoveItemIdentifier(id construct.ID, loc construct.Locator) bool {
	return s.iids.remove(id, loc)
}

// RemoveSubjectIdentifier detaches loc from topic.
func (s *Store) RemoveSubjectIdentifier(topic construct.ID, loc construct.Locator) bool {
	return s.sids.remove(topic, loc)
}

// RemoveSubjectLocator detaches loc from topic.
func (s *Store) RemoveSubjectLocator(topic construct.ID, loc construct.Locator) bool {
	return s.slos.remove(topic, loc)
}

// ByItemIdentifier resolves an item identifier to its construct.
func (s *Store) ByItemIdentifier(loc construct.Locator) (construct.Ref, bool) {
	id, ok := s.iids.owner[loc]
	if !ok {
		return construct.Ref{}, false
	}
	return s.ByID(id)
}

// BySubjectIdentifier resolves a subject identifier to its topic.
func (s *Store) BySubjectIdentifier(loc construct.Locator) (construct.ID, bool) {
	id, ok := s.sids.owner[loc]
	return id, ok
}

// BySubjectLocator resolves a subject locator to its topic.
func (s *Store) BySubjectLocator(loc construct.Locator) (construct.ID, bool) {
	id, ok := s.slos.owner[loc]
	return id, ok
}

// ItemIdentifiers returns the item identifiers of id, sorted.
func (s *Store) ItemIdentifiers(id construct.ID) []construct.Locator {
	return s.iids.locators(id)
}

// SubjectIdentifiers returns the subject identifiers of topic, sorted.
func (s *Store) SubjectIdentifiers(topic construct.ID) []construct.Locator {
	return s.sids.locators(topic)
}

// SubjectLocators returns the subject locators of topic, sorted.
func (s *Store) SubjectLocators(topic construct.ID) []construct.Locator {
	return s.slos.locators(topic)
}

// MoveItemIdentifiers transfers every item identifier of from onto to and
// returns the moved locators.
func (s *Store) MoveItemIdentifiers(from, to construct.ID) []construct.Locator {
	moved := s.iids.locators(from)
	for _, loc := range moved {
		s.iids.remove(from, loc)
		s.iids.add(to, loc)
	}
	return moved
}

// Replace moves every identifier owned by topic onto replacement. Only the
// merge engine calls it: identifiers of two distinct topics are disjoint, so
// the move never collides.
func (s *Store) Replace(topic, replacement construct.ID) []Identifier {
	var moved []Identifier
	for _, loc := range s.MoveItemIdentifiers(topic, replacement) {
		moved = append(moved, Identifier{Kind: ItemIdentifier, Locator: loc})
	}
	for _, loc := range s.sids.locators(topic) {
		s.sids.remove(topic, loc)
		s.sids.add(replacement, loc)
		moved = append(moved, Identifier{Kind: SubjectIdentifier, Locator: loc})
	}
	for _, loc := range s.slos.locators(topic) {
		s.slos.remove(topic, loc)
		s.slos.add(replacement, loc)
		moved = append(moved, Identifier{Kind: SubjectLocator, Locator: loc})
	}
	return moved
}

// RemoveConstruct unregisters id and drops every identifier it owned. The
// dropped identifiers are returned so the caller can report them.
func (s *Store) RemoveConstruct(id construct.ID) []Identifier {
	kind, ok := s.kinds[id]
	if !ok {
		return nil
	}
	var removed []Identifier
	for _, loc := range s.iids.locators(id) {
		s.iids.remove(id, loc)
		removed = append(removed, Identifier{Kind: ItemIdentifier, Locator: loc})
	}
	for _, loc := range s.sids.locators(id) {
		s.sids.remove(id, loc)
		removed = append(removed, Identifier{Kind: SubjectIdentifier, Locator: loc})
	}
	for _, loc := range s.slos.locators(id) {
		s.slos.remove(id, loc)
		removed = append(removed, Identifier{Kind: SubjectLocator, Locator: loc})
	}
	delete(s.kinds, id)
	s.byKind[kind].Remove(id)
	return removed
}
