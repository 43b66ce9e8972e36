package topicmap

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// RoleSpec describes a role to create: its type and player.
type RoleSpec = engine.RoleSpec

// CreateAssociation creates an association with its roles. An equal
// association is returned instead of a new one; repeated roles are kept
// once.
func (tm *TopicMap) CreateAssociation(ctx context.Context, typ construct.ID, themes []construct.ID, roles ...RoleSpec) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	typ, err := tm.topic(typ)
	if err != nil {
		return construct.NoID, fmt.Errorf("invalid association type: %w", err)
	}
	scope, err := tm.scope(themes)
	if err != nil {
		return construct.NoID, err
	}
	specs := make([]RoleSpec, len(roles))
	for i, r := range roles {
		if specs[i], err = tm.roleSpec(r); err != nil {
			return construct.NoID, err
		}
	}
	if existing, ok := tm.engine.FindAssociation(typ, scope, specs); ok {
		return existing, nil
	}

	ref, err := tm.register(construct.KindAssociation)
	if err != nil {
		return construct.NoID, err
	}
	s := tm.stores
	if err := s.Associations.AddAssociation(ref.ID); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Typed.SetType(ref, typ); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Scopes.SetScope(ref, scope); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.AssociationAdded, tm.Ref(), ref, nil)
	for _, spec := range specs {
		if _, ok := tm.engine.FindRole(ref.ID, spec.Type, spec.Player); ok {
			continue
		}
		if _, err := tm.addRole(ctx, ref.ID, spec); err != nil {
			return construct.NoID, err
		}
	}
	return ref.ID, nil
}

func (tm *TopicMap) roleSpec(r RoleSpec) (RoleSpec, error) {
	typ, err := tm.topic(r.Type)
	if err != nil {
		return RoleSpec{}, fmt.Errorf("invalid role type: %w", err)
	}
	player, err := tm.topic(r.Player)
	if err != nil {
		return RoleSpec{}, fmt.Errorf("invalid role player: %w", err)
	}
	return RoleSpec{Type: typ, Player: player}, nil
}

// CreateRole adds a role to association. An equal role already in the
// association is returned instead. If the new role makes the association
// equal to another one the two collapse, and the returned handle is the
// matching role of the surviving association.
func (tm *TopicMap) CreateRole(ctx context.Context, association, typ, player construct.ID) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	assoc, err := tm.lookup(association, construct.KindAssociation)
	if err != nil {
		return construct.NoID, err
	}
	spec, err := tm.roleSpec(RoleSpec{Type: typ, Player: player})
	if err != nil {
		return construct.NoID, err
	}
	if existing, ok := tm.engine.FindRole(assoc, spec.Type, spec.Player); ok {
		return existing, nil
	}
	role, err := tm.addRole(ctx, assoc, spec)
	if err != nil {
		return construct.NoID, err
	}
	if err := tm.engine.Settle(ctx, construct.AssociationRef(assoc)); err != nil {
		return construct.NoID, err
	}
	return tm.engine.Resolve(role), nil
}

func (tm *TopicMap) addRole(ctx context.Context, assoc construct.ID, spec RoleSpec) (construct.ID, error) {
	ref, err := tm.register(construct.KindRole)
	if err != nil {
		return construct.NoID, err
	}
	if err := tm.stores.Associations.AddRole(assoc, ref.ID, spec.Player); err != nil {
		return construct.NoID, err
	}
	if _, err := tm.stores.Typed.SetType(ref, spec.Type); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.RoleAdded, construct.AssociationRef(assoc), ref, nil)
	return ref.ID, nil
}
