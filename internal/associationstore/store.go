// Package associationstore holds association -> role containment and the
// role -> player edges together with the reverse player -> played roles
// index.
//
// Every registered role sits in exactly one association's role set and in
// exactly one player's played set. Both indices change in the same call, so
// they cannot disagree. The player edge is a reference, not ownership:
// removing an association never removes its players.
package associationstore

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

type roleEdge struct {
	association construct.ID
	player      construct.ID
}

// Replayed is one player edge rewritten by Replace.
type Replayed struct {
	Role        construct.ID
	Association construct.ID
}

// Store is the association relation of one topic map.
type Store struct {
	roles  map[construct.ID]construct.IDSet // association -> roles
	edges  map[construct.ID]roleEdge        // role -> association, player
	played map[construct.ID]construct.IDSet // player -> roles
}

// New creates an empty association store.
func New() *Store {
	return &Store{
		roles:  make(map[construct.ID]construct.IDSet),
		edges:  make(map[construct.ID]roleEdge),
		played: make(map[construct.ID]construct.IDSet),
	}
}

// AddAssociation registers an association with no roles.
func (s *Store) AddAssociation(association construct.ID) error {
	if _, ok := s.roles[association]; ok {
		return fmt.Errorf("%w: association %s already registered", construct.ErrUnsupported, association)
	}
	s.roles[association] = construct.IDSet{}
	return nil
}

// AddRole registers role in association, played by player.
func (s *Store) AddRole(association, role, player construct.ID) error {
	if _, ok := s.roles[association]; !ok {
		return construct.Unknown("association", association)
	}
	if _, ok := s.edges[role]; ok {
		return fmt.Errorf("%w: role %s already registered", construct.ErrUnsupported, role)
	}
	if player == construct.NoID {
		return fmt.Errorf("%w: role %s requires a player", construct.ErrModelConstraint, role)
	}
	s.edges[role] = roleEdge{association: association, player: player}
	s.roles[association].Add(role)
	s.addPlayed(player, role)
	return nil
}

func (s *Store) addPlayed(player, role construct.ID) {
	if s.played[player] == nil {
		s.played[player] = construct.IDSet{}
	}
	s.played[player].Add(role)
}

func (s *Store) removePlayed(player, role construct.ID) {
	s.played[player].Remove(role)
	if s.played[player].Len() == 0 {
		delete(s.played, player)
	}
}

// HasAssociation reports whether association is registered.
func (s *Store) HasAssociation(association construct.ID) bool {
	_, ok := s.roles[association]
	return ok
}

// Associations returns every registered association in creation order.
func (s *Store) Associations() []construct.ID {
	set := make(construct.IDSet, len(s.roles))
	for a := range s.roles {
		set.Add(a)
	}
	return set.Sorted()
}

// Roles returns the roles of association.
func (s *Store) Roles(association construct.ID) []construct.ID {
	return s.roles[association].Sorted()
}

// RolesPlayed returns the roles played by player.
func (s *Store) RolesPlayed(player construct.ID) []construct.ID {
	return s.played[player].Sorted()
}

// IsPlayer reports whether topic plays any role.
func (s *Store) IsPlayer(topic construct.ID) bool {
	return s.played[topic].Len() > 0
}

// Player returns the player of role.
func (s *Store) Player(role construct.ID) (construct.ID, bool) {
	e, ok := s.edges[role]
	return e.player, ok
}

// Association returns the association containing role.
func (s *Store) Association(role construct.ID) (construct.ID, bool) {
	e, ok := s.edges[role]
	return e.association, ok
}

// SetPlayer changes the player of role, updating both indices, and returns
// the previous player.
func (s *Store) SetPlayer(role, player construct.ID) (construct.ID, error) {
	e, ok := s.edges[role]
	if !ok {
		return construct.NoID, construct.Unknown("role", role)
	}
	if player == construct.NoID {
		return construct.NoID, fmt.Errorf("%w: role %s requires a player", construct.ErrModelConstraint, role)
	}
	old := e.player
	if old == player {
		return old, nil
	}
	s.removePlayed(old, role)
	s.addPlayed(player, role)
	e.player = player
	s.edges[role] = e
	return old, nil
}

// RemoveRole drops role from its association and from its player's set.
func (s *Store) RemoveRole(role construct.ID) error {
	e, ok := s.edges[role]
	if !ok {
		return construct.Unknown("role", role)
	}
	s.roles[e.association].Remove(role)
	s.removePlayed(e.player, role)
	delete(s.edges, role)
	return nil
}

// RemoveAssociation removes association and all its roles. The removed
// roles are returned; callers must already have dissolved their other edges.
func (s *Store) RemoveAssociation(association construct.ID) ([]construct.ID, error) {
	roles, ok := s.roles[association]
	if !ok {
		return nil, construct.Unknown("association", association)
	}
	removed := roles.Sorted()
	for _, role := range removed {
		e := s.edges[role]
		s.removePlayed(e.player, role)
		delete(s.edges, role)
	}
	delete(s.roles, association)
	return removed, nil
}

// Replace makes replacement the player of every role played by topic. Only
// the merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) []Replayed {
	if topic == replacement {
		return nil
	}
	roles := s.played[topic].Sorted()
	out := make([]Replayed, 0, len(roles))
	for _, role := range roles {
		e := s.edges[role]
		s.removePlayed(topic, role)
		s.addPlayed(replacement, role)
		e.player = replacement
		s.edges[role] = e
		out = append(out, Replayed{Role: role, Association: e.association})
	}
	return out
}
