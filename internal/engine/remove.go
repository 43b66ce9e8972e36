package engine

import (
	"context"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// Removal dissolves every edge of a construct before its owning store
// forgets it. The removal event carries the removed construct as Old and,
// when the construct was collapsed into an equal one, the survivor as New.

func survivorValue(into construct.Ref) any {
	if into.IsZero() {
		return nil
	}
	return into
}

// RemoveVariant removes a variant from its name.
func (e *Engine) RemoveVariant(ctx context.Context, variant construct.ID) error {
	return e.removeVariant(ctx, variant, construct.Ref{})
}

func (e *Engine) removeVariant(ctx context.Context, variant construct.ID, into construct.Ref) error {
	s := e.stores
	if !s.Identity.IsKind(variant, construct.KindVariant) {
		return construct.Unknown("variant", variant)
	}
	name, _ := s.Characteristics.Parent(variant)
	s.Reification.RemoveReification(variant)
	if err := s.Scopes.RemoveScoped(variant); err != nil {
		return err
	}
	s.Identity.RemoveConstruct(variant)
	if err := s.Characteristics.RemoveVariant(variant); err != nil {
		return err
	}
	e.Emit(ctx, event.VariantRemoved, construct.NameRef(name), survivorValue(into), construct.VariantRef(variant))
	return nil
}

// RemoveName removes a name and its variants from its topic.
func (e *Engine) RemoveName(ctx context.Context, name construct.ID) error {
	return e.removeName(ctx, name, construct.Ref{})
}

func (e *Engine) removeName(ctx context.Context, name construct.ID, into construct.Ref) error {
	s := e.stores
	if !s.Identity.IsKind(name, construct.KindName) {
		return construct.Unknown("name", name)
	}
	for _, v := range s.Characteristics.Variants(name) {
		if err := e.removeVariant(ctx, v, construct.Ref{}); err != nil {
			return err
		}
	}
	topic, _ := s.Characteristics.Parent(name)
	s.Reification.RemoveReification(name)
	s.Typed.Remove(name)
	if err := s.Scopes.RemoveScoped(name); err != nil {
		return err
	}
	s.Identity.RemoveConstruct(name)
	if err := s.Characteristics.RemoveName(name); err != nil {
		return err
	}
	e.Emit(ctx, event.NameRemoved, construct.TopicRef(topic), survivorValue(into), construct.NameRef(name))
	return nil
}

// RemoveOccurrence removes an occurrence from its topic.
func (e *Engine) RemoveOccurrence(ctx context.Context, occ construct.ID) error {
	return e.removeOccurrence(ctx, occ, construct.Ref{})
}

func (e *Engine) removeOccurrence(ctx context.Context, occ construct.ID, into construct.Ref) error {
	s := e.stores
	if !s.Identity.IsKind(occ, construct.KindOccurrence) {
		return construct.Unknown("occurrence", occ)
	}
	topic, _ := s.Characteristics.Parent(occ)
	s.Reification.RemoveReification(occ)
	s.Typed.Remove(occ)
	if err := s.Scopes.RemoveScoped(occ); err != nil {
		return err
	}
	s.Identity.RemoveConstruct(occ)
	if err := s.Characteristics.RemoveOccurrence(occ); err != nil {
		return err
	}
	e.Emit(ctx, event.OccurrenceRemoved, construct.TopicRef(topic), survivorValue(into), construct.OccurrenceRef(occ))
	return nil
}

// RemoveRole removes a role from its association. The association may end
// up equal to another one, so it is checked for duplicates afterwards.
func (e *Engine) RemoveRole(ctx context.Context, role construct.ID) error {
	assoc, ok := e.stores.Associations.Association(role)
	if err := e.removeRole(ctx, role, construct.Ref{}); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return e.run(ctx, []task{associationTask(assoc)})
}

func (e *Engine) removeRole(ctx context.Context, role construct.ID, into construct.Ref) error {
	s := e.stores
	if !s.Identity.IsKind(role, construct.KindRole) {
		return construct.Unknown("role", role)
	}
	assoc, _ := s.Associations.Association(role)
	s.Reification.RemoveReification(role)
	s.Typed.Remove(role)
	s.Identity.RemoveConstruct(role)
	if err := s.Associations.RemoveRole(role); err != nil {
		return err
	}
	e.Emit(ctx, event.RoleRemoved, construct.AssociationRef(assoc), survivorValue(into), construct.RoleRef(role))
	return nil
}

// RemoveAssociation removes an association and its roles.
func (e *Engine) RemoveAssociation(ctx context.Context, assoc construct.ID) error {
	return e.removeAssociation(ctx, assoc, construct.Ref{})
}

func (e *Engine) removeAssociation(ctx context.Context, assoc construct.ID, into construct.Ref) error {
	s := e.stores
	if !s.Identity.IsKind(assoc, construct.KindAssociation) {
		return construct.Unknown("association", assoc)
	}
	for _, role := range s.Associations.Roles(assoc) {
		if err := e.removeRole(ctx, role, construct.Ref{}); err != nil {
			return err
		}
	}
	s.Reification.RemoveReification(assoc)
	s.Typed.Remove(assoc)
	if err := s.Scopes.RemoveScoped(assoc); err != nil {
		return err
	}
	s.Identity.RemoveConstruct(assoc)
	if _, err := s.Associations.RemoveAssociation(assoc); err != nil {
		return err
	}
	e.Emit(ctx, event.AssociationRemoved, s.MapRef(), survivorValue(into), construct.AssociationRef(assoc))
	return nil
}
