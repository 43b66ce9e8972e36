// Package characteristicstore holds names and occurrences under topics,
// variants under names, their literal values and datatypes, and the reverse
// value and datatype indices used for literal search.
//
// The value index maps an exact string to the constructs carrying it; it is
// not tokenized. Pattern search scans the distinct values, which is linear in
// their number.
package characteristicstore

import (
	"fmt"
	"regexp"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Moved is one ownership edge rewritten by Replace.
type Moved struct {
	Construct construct.Ref
	OldParent construct.ID
	NewParent construct.ID
}

// Store is the characteristics relation of one topic map. Parent topics are
// not known here; callers check them in the identity store before adding.
type Store struct {
	names       map[construct.ID]construct.IDSet // topic -> names
	occurrences map[construct.ID]construct.IDSet // topic -> occurrences
	variants    map[construct.ID]construct.IDSet // name -> variants

	parent map[construct.ID]construct.ID
	kindOf map[construct.ID]construct.Kind

	values     map[construct.ID]string
	datatypes  map[construct.ID]construct.Locator
	byValue    map[string]construct.IDSet
	byDatatype map[construct.Locator]construct.IDSet
}

// New creates an empty characteristics store.
func New() *Store {
	return &Store{
		names:       make(map[construct.ID]construct.IDSet),
		occurrences: make(map[construct.ID]construct.IDSet),
		variants:    make(map[construct.ID]construct.IDSet),
		parent:      make(map[construct.ID]construct.ID),
		kindOf:      make(map[construct.ID]construct.Kind),
		values:      make(map[construct.ID]string),
		datatypes:   make(map[construct.ID]construct.Locator),
		byValue:     make(map[string]construct.IDSet),
		byDatatype:  make(map[construct.Locator]construct.IDSet),
	}
}

func addTo(m map[construct.ID]construct.IDSet, key, id construct.ID) {
	if m[key] == nil {
		m[key] = construct.IDSet{}
	}
	m[key].Add(id)
}

func removeFrom(m map[construct.ID]construct.IDSet, key, id construct.ID) {
	m[key].Remove(id)
	if m[key].Len() == 0 {
		delete(m, key)
	}
}

func (s *Store) register(kind construct.Kind, parent, id construct.ID, value string) error {
	if _, ok := s.kindOf[id]; ok {
		return fmt.Errorf("%w: %s %s already registered", construct.ErrUnsupported, kind, id)
	}
	s.kindOf[id] = kind
	s.parent[id] = parent
	s.indexValue(id, value)
	return nil
}

// AddName registers name under topic with value.
func (s *Store) AddName(topic, name construct.ID, value string) error {
	if err := s.register(construct.KindName, topic, name, value); err != nil {
		return err
	}
	addTo(s.names, topic, name)
	return nil
}

// AddOccurrence registers occ under topic with value and datatype.
func (s *Store) AddOccurrence(topic, occ construct.ID, value string, datatype construct.Locator) error {
	if err := s.register(construct.KindOccurrence, topic, occ, value); err != nil {
		return err
	}
	addTo(s.occurrences, topic, occ)
	s.indexDatatype(occ, datatype)
	return nil
}

// AddVariant registers variant under name, which must already be registered.
func (s *Store) AddVariant(name, variant construct.ID, value string, datatype construct.Locator) error {
	if s.kindOf[name] != construct.KindName {
		return construct.Unknown("name", name)
	}
	if err := s.register(construct.KindVariant, name, variant, value); err != nil {
		return err
	}
	addTo(s.variants, name, variant)
	s.indexDatatype(variant, datatype)
	return nil
}

func (s *Store) indexValue(id construct.ID, value string) {
	s.values[id] = value
	if s.byValue[value] == nil {
		s.byValue[value] = construct.IDSet{}
	}
	s.byValue[value].Add(id)
}

func (s *Store) unindexValue(id construct.ID) {
	value, ok := s.values[id]
	if !ok {
		return
	}
	s.byValue[value].Remove(id)
	if s.byValue[value].Len() == 0 {
		delete(s.byValue, value)
	}
	delete(s.values, id)
}

func (s *Store) indexDatatype(id construct.ID, datatype construct.Locator) {
	if datatype == "" {
		datatype = construct.DatatypeString
	}
	s.datatypes[id] = datatype
	if s.byDatatype[datatype] == nil {
		s.byDatatype[datatype] = construct.IDSet{}
	}
	s.byDatatype[datatype].Add(id)
}

func (s *Store) unindexDatatype(id construct.ID) {
	dt, ok := s.datatypes[id]
	if !ok {
		return
	}
	s.byDatatype[dt].Remove(id)
	if s.byDatatype[dt].Len() == 0 {
		delete(s.byDatatype, dt)
	}
	delete(s.datatypes, id)
}

// Kind returns the kind of a registered characteristic or variant.
func (s *Store) Kind(id construct.ID) (construct.Kind, bool) {
	k, ok := s.kindOf[id]
	return k, ok
}

// Names returns the names of topic.
func (s *Store) Names(topic construct.ID) []construct.ID { return s.names[topic].Sorted() }

// Occurrences returns the occurrences of topic.
func (s *Store) Occurrences(topic construct.ID) []construct.ID {
	return s.occurrences[topic].Sorted()
}

// Variants returns the variants of name.
func (s *Store) Variants(name construct.ID) []construct.ID { return s.variants[name].Sorted() }

// HasCharacteristics reports whether topic owns any name or occurrence.
func (s *Store) HasCharacteristics(topic construct.ID) bool {
	return s.names[topic].Len() > 0 || s.occurrences[topic].Len() > 0
}

// Parent returns the owning topic of a name or occurrence, or the owning
// name of a variant.
func (s *Store) Parent(id construct.ID) (construct.ID, bool) {
	p, ok := s.parent[id]
	return p, ok
}

// Value returns the literal value of id.
func (s *Store) Value(id construct.ID) (string, bool) {
	v, ok := s.values[id]
	return v, ok
}

// SetValue replaces the value of id and returns the previous one. The
// datatype is not touched; use SetDatatype for that.
func (s *Store) SetValue(id construct.ID, value string) (string, error) {
	old, ok := s.values[id]
	if !ok {
		return "", construct.Unknown("characteristic", id)
	}
	s.unindexValue(id)
	s.indexValue(id, value)
	return old, nil
}

// Datatype returns the datatype of an occurrence or variant. Names, and
// constructs whose datatype was never set, report xsd:string.
func (s *Store) Datatype(id construct.ID) construct.Locator {
	if dt, ok := s.datatypes[id]; ok {
		return dt
	}
	return construct.DatatypeString
}

// SetDatatype replaces the datatype of an occurrence or variant.
func (s *Store) SetDatatype(id construct.ID, datatype construct.Locator) (construct.Locator, error) {
	kind, ok := s.kindOf[id]
	if !ok {
		return "", construct.Unknown("characteristic", id)
	}
	if !kind.HasDatatype() {
		return "", fmt.Errorf("%w: %s has no datatype", construct.ErrUnsupported, kind)
	}
	old := s.Datatype(id)
	s.unindexDatatype(id)
	s.indexDatatype(id, datatype)
	return old, nil
}

// ByValue returns the constructs whose value is exactly value.
func (s *Store) ByValue(value string) []construct.Ref {
	return s.refs(s.byValue[value].Sorted())
}

// ByPattern returns the constructs whose value matches re.
func (s *Store) ByPattern(re *regexp.Regexp) []construct.Ref {
	set := construct.IDSet{}
	for value, ids := range s.byValue {
		if !re.MatchString(value) {
			continue
		}
		for id := range ids {
			set.Add(id)
		}
	}
	return s.refs(set.Sorted())
}

// ByDatatype returns the occurrences and variants with datatype.
func (s *Store) ByDatatype(datatype construct.Locator) []construct.Ref {
	return s.refs(s.byDatatype[datatype].Sorted())
}

func (s *Store) refs(ids []construct.ID) []construct.Ref {
	out := make([]construct.Ref, len(ids))
	for i, id := range ids {
		out[i] = construct.Ref{Kind: s.kindOf[id], ID: id}
	}
	return out
}

func (s *Store) forget(id construct.ID) {
	s.unindexValue(id)
	s.unindexDatatype(id)
	delete(s.parent, id)
	delete(s.kindOf, id)
}

// RemoveName drops name from its topic and every index. Its variants must
// be removed first.
func (s *Store) RemoveName(name construct.ID) error {
	if s.kindOf[name] != construct.KindName {
		return construct.Unknown("name", name)
	}
	if s.variants[name].Len() > 0 {
		return fmt.Errorf("%w: name %s still has variants", construct.ErrUnsupported, name)
	}
	removeFrom(s.names, s.parent[name], name)
	s.forget(name)
	return nil
}

// RemoveOccurrence drops occ from its topic and every index.
func (s *Store) RemoveOccurrence(occ construct.ID) error {
	if s.kindOf[occ] != construct.KindOccurrence {
		return construct.Unknown("occurrence", occ)
	}
	removeFrom(s.occurrences, s.parent[occ], occ)
	s.forget(occ)
	return nil
}

// RemoveVariant drops variant from its name and every index.
func (s *Store) RemoveVariant(variant construct.ID) error {
	if s.kindOf[variant] != construct.KindVariant {
		return construct.Unknown("variant", variant)
	}
	removeFrom(s.variants, s.parent[variant], variant)
	s.forget(variant)
	return nil
}

// MoveVariant reattaches variant to name.
func (s *Store) MoveVariant(variant, name construct.ID) error {
	if s.kindOf[variant] != construct.KindVariant {
		return construct.Unknown("variant", variant)
	}
	if s.kindOf[name] != construct.KindName {
		return construct.Unknown("name", name)
	}
	removeFrom(s.variants, s.parent[variant], variant)
	addTo(s.variants, name, variant)
	s.parent[variant] = name
	return nil
}

// Replace moves every name and occurrence of topic to replacement. Only the
// merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) []Moved {
	if topic == replacement {
		return nil
	}
	var out []Moved
	for _, name := range s.names[topic].Sorted() {
		addTo(s.names, replacement, name)
		s.parent[name] = replacement
		out = append(out, Moved{Construct: construct.NameRef(name), OldParent: topic, NewParent: replacement})
	}
	for _, occ := range s.occurrences[topic].Sorted() {
		addTo(s.occurrences, replacement, occ)
		s.parent[occ] = replacement
		out = append(out, Moved{Construct: construct.OccurrenceRef(occ), OldParent: topic, NewParent: replacement})
	}
	delete(s.names, topic)
	delete(s.occurrences, topic)
	return out
}
