package topicmap

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// defaultNameType returns the topic-name PSI topic, creating it on first use.
func (tm *TopicMap) defaultNameType(ctx context.Context) (construct.ID, error) {
	if id, ok := tm.stores.Identity.BySubjectIdentifier(construct.DefaultNameType); ok {
		return id, nil
	}
	id, err := tm.createTopic(ctx, false)
	if err != nil {
		return construct.NoID, err
	}
	return tm.addSubjectIdentifier(ctx, id, construct.DefaultNameType)
}

// CreateName adds a name to topic. A NoID type means the default name
// type. An equal name already on topic is returned instead of a new one.
func (tm *TopicMap) CreateName(ctx context.Context, topic, typ construct.ID, value string, themes ...construct.ID) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	parent, err := tm.topic(topic)
	if err != nil {
		return construct.NoID, err
	}
	if typ != construct.NoID {
		if typ, err = tm.topic(typ); err != nil {
			return construct.NoID, fmt.Errorf("invalid name type: %w", err)
		}
	}
	scope, err := tm.scope(themes)
	if err != nil {
		return construct.NoID, err
	}
	// The default type is created only once every check has passed.
	if typ == construct.NoID {
		if typ, err = tm.defaultNameType(ctx); err != nil {
			return construct.NoID, fmt.Errorf("invalid name type: %w", err)
		}
	}
	if existing, ok := tm.engine.FindName(parent, typ, value, scope); ok {
		return existing, nil
	}

	ref, err := tm.register(construct.KindName)
	if err != nil {
		return construct.NoID, err
	}
	s := tm.stores
	if err := s.Characteristics.AddName(parent, ref.ID, value); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Typed.SetType(ref, typ); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Scopes.SetScope(ref, scope); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.NameAdded, construct.TopicRef(parent), ref, nil)
	return ref.ID, nil
}

// CreateOccurrence adds an occurrence to topic. An empty datatype means
// xsd:string.
func (tm *TopicMap) CreateOccurrence(ctx context.Context, topic, typ construct.ID, value string, datatype construct.Locator, themes ...construct.ID) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	parent, err := tm.topic(topic)
	if err != nil {
		return construct.NoID, err
	}
	if typ == construct.NoID {
		return construct.NoID, fmt.Errorf("%w: occurrence requires a type", construct.ErrModelConstraint)
	}
	if typ, err = tm.topic(typ); err != nil {
		return construct.NoID, fmt.Errorf("invalid occurrence type: %w", err)
	}
	if datatype == "" {
		datatype = construct.DatatypeString
	}
	scope, err := tm.scope(themes)
	if err != nil {
		return construct.NoID, err
	}
	if existing, ok := tm.engine.FindOccurrence(parent, typ, value, datatype, scope); ok {
		return existing, nil
	}

	ref, err := tm.register(construct.KindOccurrence)
	if err != nil {
		return construct.NoID, err
	}
	s := tm.stores
	if err := s.Characteristics.AddOccurrence(parent, ref.ID, value, datatype); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Typed.SetType(ref, typ); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Scopes.SetScope(ref, scope); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.OccurrenceAdded, construct.TopicRef(parent), ref, nil)
	return ref.ID, nil
}

// CreateVariant adds a variant to name. The variant needs at least one
// theme the name's scope does not already contain.
func (tm *TopicMap) CreateVariant(ctx context.Context, name construct.ID, value string, datatype construct.Locator, themes ...construct.ID) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	parent, err := tm.lookup(name, construct.KindName)
	if err != nil {
		return construct.NoID, err
	}
	if datatype == "" {
		datatype = construct.DatatypeString
	}
	own, err := tm.scope(themes)
	if err != nil {
		return construct.NoID, err
	}
	nameScope := tm.stores.ScopeOf(parent)
	if nameScope.ContainsAll(own) {
		return construct.NoID, fmt.Errorf("%w: variant scope %s adds no theme to name scope %s", construct.ErrModelConstraint, own, nameScope)
	}
	if existing, ok := tm.engine.FindVariant(parent, value, datatype, tm.stores.Scopes.Union(nameScope, own)); ok {
		return existing, nil
	}

	ref, err := tm.register(construct.KindVariant)
	if err != nil {
		return construct.NoID, err
	}
	s := tm.stores
	if err := s.Characteristics.AddVariant(parent, ref.ID, value, datatype); err != nil {
		return construct.NoID, err
	}
	if _, err := s.Scopes.SetVariantScope(ref.ID, parent, own); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.VariantAdded, construct.NameRef(parent), ref, nil)
	return ref.ID, nil
}
