// Package reificationstore holds the bijection between reifier topics and
// the constructs they reify.
package reificationstore

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Store is the reification relation of one topic map.
type Store struct {
	reifierOf map[construct.ID]construct.ID
	reified   map[construct.ID]construct.Ref
}

// New creates an empty reification store.
func New() *Store {
	return &Store{
		reifierOf: make(map[construct.ID]construct.ID),
		reified:   make(map[construct.ID]construct.Ref),
	}
}

// SetReifier makes reifier reify reifiable and returns the previous reifier
// of reifiable (NoID if none). When reifier already reifies a different
// construct a *construct.ReificationConflictError is returned and nothing
// changes.
func (s *Store) SetReifier(reifiable construct.Ref, reifier construct.ID) (construct.ID, error) {
	if !reifiable.Kind.IsReifiable() {
		return construct.NoID, fmt.Errorf("%w: %s is not reifiable", construct.ErrUnsupported, reifiable.Kind)
	}
	if reifier == construct.NoID {
		old, _ := s.RemoveReification(reifiable.ID)
		return old, nil
	}
	if existing, ok := s.reified[reifier]; ok && existing.ID != reifiable.ID {
		return construct.NoID, &construct.ReificationConflictError{
			Reifier:   reifier,
			Existing:  existing,
			Requested: reifiable,
		}
	}
	old := s.reifierOf[reifiable.ID]
	if old == reifier {
		return old, nil
	}
	if old != construct.NoID {
		delete(s.reified, old)
	}
	s.reifierOf[reifiable.ID] = reifier
	s.reified[reifier] = reifiable
	return old, nil
}

// Reifier returns the topic reifying id.
func (s *Store) Reifier(id construct.ID) (construct.ID, bool) {
	r, ok := s.reifierOf[id]
	return r, ok
}

// Reified returns the construct reified by reifier.
func (s *Store) Reified(reifier construct.ID) (construct.Ref, bool) {
	r, ok := s.reified[reifier]
	return r, ok
}

// RemoveReification dissolves the edge of reifiable and returns the former
// reifier.
func (s *Store) RemoveReification(reifiable construct.ID) (construct.ID, bool) {
	r, ok := s.reifierOf[reifiable]
	if !ok {
		return construct.NoID, false
	}
	delete(s.reifierOf, reifiable)
	delete(s.reified, r)
	return r, true
}

// RemoveReifier dissolves the edge of reifier and returns the construct it
// reified.
func (s *Store) RemoveReifier(reifier construct.ID) (construct.Ref, bool) {
	ref, ok := s.reified[reifier]
	if !ok {
		return construct.Ref{}, false
	}
	delete(s.reified, reifier)
	delete(s.reifierOf, ref.ID)
	return ref, true
}

// CheckReplace reports the conflict Replace would hit without changing
// anything: both topics reify different constructs.
func (s *Store) CheckReplace(topic, replacement construct.ID) error {
	mine, ok := s.reified[topic]
	if !ok {
		return nil
	}
	theirs, ok := s.reified[replacement]
	if !ok || theirs.ID == mine.ID {
		return nil
	}
	return &construct.ReificationConflictError{Reifier: replacement, Existing: theirs, Requested: mine}
}

// Replace moves the reification edge of topic onto replacement and returns
// the construct now reified by replacement, if the edge moved. Only the
// merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) (construct.Ref, bool, error) {
	if topic == replacement {
		return construct.Ref{}, false, nil
	}
	if err := s.CheckReplace(topic, replacement); err != nil {
		return construct.Ref{}, false, err
	}
	ref, ok := s.RemoveReifier(topic)
	if !ok {
		return construct.Ref{}, false, nil
	}
	s.reifierOf[ref.ID] = replacement
	s.reified[replacement] = ref
	return ref, true, nil
}
