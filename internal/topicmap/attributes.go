package topicmap

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// SetType retypes a name, occurrence, association or role.
func (tm *TopicMap) SetType(ctx context.Context, ref construct.Ref, typ construct.ID) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !ref.Kind.IsTyped() {
		return fmt.Errorf("%w: %s is not typed", construct.ErrUnsupported, ref.Kind)
	}
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	if typ == construct.NoID {
		return fmt.Errorf("%w: %s requires a type", construct.ErrModelConstraint, r)
	}
	if typ, err = tm.topic(typ); err != nil {
		return fmt.Errorf("invalid type: %w", err)
	}
	old, err := tm.stores.Typed.SetType(r, typ)
	if err != nil || old == typ {
		return err
	}
	tm.emit(ctx, event.TypeSet, r, typ, old)
	return tm.engine.Settle(ctx, r)
}

// SetScope rescopes a name, occurrence, association or variant. For a
// variant themes are its own themes, which must add at least one theme to
// the scope of its name.
func (tm *TopicMap) SetScope(ctx context.Context, ref construct.Ref, themes ...construct.ID) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !ref.Kind.IsScoped() {
		return fmt.Errorf("%w: %s is not scoped", construct.ErrUnsupported, ref.Kind)
	}
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	scope, err := tm.scope(themes)
	if err != nil {
		return err
	}
	s := tm.stores
	if r.Kind == construct.KindVariant {
		name, _ := s.Characteristics.Parent(r.ID)
		nameScope := s.ScopeOf(name)
		if nameScope.ContainsAll(scope) {
			return fmt.Errorf("%w: variant scope %s adds no theme to name scope %s", construct.ErrModelConstraint, scope, nameScope)
		}
		old, err := s.Scopes.SetVariantScope(r.ID, name, scope)
		if err != nil || old == scope {
			return err
		}
		tm.emit(ctx, event.ScopeSet, r, scope, old)
		return tm.engine.Settle(ctx, r)
	}
	old, err := s.Scopes.SetScope(r, scope)
	if err != nil || old == scope {
		return err
	}
	tm.emit(ctx, event.ScopeSet, r, scope, old)
	return tm.engine.Settle(ctx, r)
}

// SetValue replaces the value of a name, occurrence or variant. The
// datatype is left alone.
func (tm *TopicMap) SetValue(ctx context.Context, ref construct.Ref, value string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !ref.Kind.IsValued() {
		return fmt.Errorf("%w: %s has no value", construct.ErrUnsupported, ref.Kind)
	}
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	old, err := tm.stores.Characteristics.SetValue(r.ID, value)
	if err != nil || old == value {
		return err
	}
	tm.emit(ctx, event.ValueSet, r, value, old)
	return tm.engine.Settle(ctx, r)
}

// SetDatatype replaces the datatype of an occurrence or variant.
func (tm *TopicMap) SetDatatype(ctx context.Context, ref construct.Ref, datatype construct.Locator) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !ref.Kind.HasDatatype() {
		return fmt.Errorf("%w: %s has no datatype", construct.ErrUnsupported, ref.Kind)
	}
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	if datatype == "" {
		return fmt.Errorf("%w: empty datatype", construct.ErrModelConstraint)
	}
	old, err := tm.stores.Characteristics.SetDatatype(r.ID, datatype)
	if err != nil || old == datatype {
		return err
	}
	tm.emit(ctx, event.DatatypeSet, r, datatype, old)
	return tm.engine.Settle(ctx, r)
}

// SetPlayer changes the player of role.
func (tm *TopicMap) SetPlayer(ctx context.Context, role, player construct.ID) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	r, err := tm.lookup(role, construct.KindRole)
	if err != nil {
		return err
	}
	if player, err = tm.topic(player); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}
	old, err := tm.stores.Associations.SetPlayer(r, player)
	if err != nil || old == player {
		return err
	}
	tm.emit(ctx, event.PlayerSet, construct.RoleRef(r), player, old)
	return tm.engine.Settle(ctx, construct.RoleRef(r))
}

// SetReifier makes reifier reify ref, or drops the reifier of ref when
// reifier is NoID. A reifier already reifying another construct is refused
// with a *construct.ReificationConflictError.
func (tm *TopicMap) SetReifier(ctx context.Context, ref construct.Ref, reifier construct.ID) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if !ref.Kind.IsReifiable() {
		return fmt.Errorf("%w: %s is not reifiable", construct.ErrUnsupported, ref.Kind)
	}
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	if reifier != construct.NoID {
		if reifier, err = tm.topic(reifier); err != nil {
			return fmt.Errorf("invalid reifier: %w", err)
		}
	}
	old, err := tm.stores.Reification.SetReifier(r, reifier)
	if err != nil || old == reifier {
		return err
	}
	tm.emit(ctx, event.ReifierSet, r, reifier, old)
	return nil
}

// AddTopicType makes topic an instance of typ.
func (tm *TopicMap) AddTopicType(ctx context.Context, topic, typ construct.ID) error {
	return tm.topicEdge(ctx, topic, typ, tm.stores.TopicTypes.AddType, event.TopicTypeAdded, true)
}

// RemoveTopicType removes typ from the types of topic.
func (tm *TopicMap) RemoveTopicType(ctx context.Context, topic, typ construct.ID) error {
	return tm.topicEdge(ctx, topic, typ, tm.stores.TopicTypes.RemoveType, event.TopicTypeRemoved, false)
}

// AddSupertype makes super a supertype of sub.
func (tm *TopicMap) AddSupertype(ctx context.Context, sub, super construct.ID) error {
	return tm.topicEdge(ctx, sub, super, tm.stores.TopicTypes.AddSupertype, event.SupertypeAdded, true)
}

// RemoveSupertype removes super from the supertypes of sub.
func (tm *TopicMap) RemoveSupertype(ctx context.Context, sub, super construct.ID) error {
	return tm.topicEdge(ctx, sub, super, tm.stores.TopicTypes.RemoveSupertype, event.SupertypeRemoved, false)
}

func (tm *TopicMap) topicEdge(ctx context.Context, from, to construct.ID, apply func(from, to construct.ID) bool, kind event.Kind, added bool) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	from, err := tm.topic(from)
	if err != nil {
		return err
	}
	if to, err = tm.topic(to); err != nil {
		return err
	}
	if !apply(from, to) {
		return nil
	}
	if added {
		tm.emit(ctx, kind, construct.TopicRef(from), to, nil)
	} else {
		tm.emit(ctx, kind, construct.TopicRef(from), nil, to)
	}
	return nil
}
