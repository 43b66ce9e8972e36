package topicmap

import (
	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Kind returns the kind of the live construct id.
func (tm *TopicMap) Kind(id construct.ID) (construct.Kind, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	ref, ok := tm.stores.Identity.ByID(id)
	return ref.Kind, ok
}

// Topics returns every topic in creation order.
func (tm *TopicMap) Topics() []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.IDs(construct.KindTopic)
}

// Associations returns every association in creation order.
func (tm *TopicMap) Associations() []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.IDs(construct.KindAssociation)
}

// Count returns the number of live constructs of kind.
func (tm *TopicMap) Count(kind construct.Kind) int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.Count(kind)
}

// Names returns the names of topic.
func (tm *TopicMap) Names(topic construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Characteristics.Names(tm.engine.Resolve(topic))
}

// Occurrences returns the occurrences of topic.
func (tm *TopicMap) Occurrences(topic construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Characteristics.Occurrences(tm.engine.Resolve(topic))
}

// Variants returns the variants of name.
func (tm *TopicMap) Variants(name construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Characteristics.Variants(tm.engine.Resolve(name))
}

// Parent returns the topic owning a name or occurrence, the name owning a
// variant or the association owning a role.
func (tm *TopicMap) Parent(id construct.ID) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	id = tm.engine.Resolve(id)
	if assoc, ok := tm.stores.Associations.Association(id); ok {
		return assoc, true
	}
	return tm.stores.Characteristics.Parent(id)
}

// Value returns the value of a name, occurrence or variant.
func (tm *TopicMap) Value(id construct.ID) (string, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Characteristics.Value(tm.engine.Resolve(id))
}

// Datatype returns the datatype of an occurrence or variant.
func (tm *TopicMap) Datatype(id construct.ID) construct.Locator {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Characteristics.Datatype(tm.engine.Resolve(id))
}

// Type returns the type of a typed construct.
func (tm *TopicMap) Type(id construct.ID) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	typ, err := tm.stores.Typed.Type(tm.engine.Resolve(id))
	return typ, err == nil
}

// Scope returns the themes of the effective scope of a scoped construct.
func (tm *TopicMap) Scope(id construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.ScopeOf(tm.engine.Resolve(id)).Themes()
}

// Roles returns the roles of association.
func (tm *TopicMap) Roles(association construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Associations.Roles(tm.engine.Resolve(association))
}

// RolesPlayed returns the roles played by topic.
func (tm *TopicMap) RolesPlayed(topic construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Associations.RolesPlayed(tm.engine.Resolve(topic))
}

// Player returns the player of role.
func (tm *TopicMap) Player(role construct.ID) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Associations.Player(tm.engine.Resolve(role))
}

// Reifier returns the topic reifying id.
func (tm *TopicMap) Reifier(id construct.ID) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Reification.Reifier(tm.engine.Resolve(id))
}

// Reified returns the construct reified by topic.
func (tm *TopicMap) Reified(topic construct.ID) (construct.Ref, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Reification.Reified(tm.engine.Resolve(topic))
}

// ItemIdentifiers returns the item identifiers of id.
func (tm *TopicMap) ItemIdentifiers(id construct.ID) []construct.Locator {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.ItemIdentifiers(tm.engine.Resolve(id))
}

// SubjectIdentifiers returns the subject identifiers of topic.
func (tm *TopicMap) SubjectIdentifiers(topic construct.ID) []construct.Locator {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.SubjectIdentifiers(tm.engine.Resolve(topic))
}

// SubjectLocators returns the subject locators of topic.
func (tm *TopicMap) SubjectLocators(topic construct.ID) []construct.Locator {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.SubjectLocators(tm.engine.Resolve(topic))
}

// TopicTypes returns the direct types of topic.
func (tm *TopicMap) TopicTypes(topic construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.TopicTypes.DirectTypes(tm.engine.Resolve(topic))
}

// Supertypes returns the direct supertypes of topic.
func (tm *TopicMap) Supertypes(topic construct.ID) []construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.TopicTypes.DirectSupertypes(tm.engine.Resolve(topic))
}
