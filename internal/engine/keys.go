package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/scopestore"
)

// charKey identifies equal names, occurrences and variants. Scopes are
// canonical, so pointer equality is set equality.
type charKey struct {
	typ      construct.ID
	value    string
	datatype construct.Locator
	scope    *scopestore.Scope
}

type roleKey struct {
	typ    construct.ID
	player construct.ID
}

func (e *Engine) nameKey(id construct.ID) charKey {
	value, _ := e.stores.Characteristics.Value(id)
	return charKey{typ: e.stores.TypeOf(id), value: value, scope: e.stores.ScopeOf(id)}
}

func (e *Engine) occurrenceKey(id construct.ID) charKey {
	value, _ := e.stores.Characteristics.Value(id)
	return charKey{
		typ:      e.stores.TypeOf(id),
		value:    value,
		datatype: e.stores.Characteristics.Datatype(id),
		scope:    e.stores.ScopeOf(id),
	}
}

func (e *Engine) variantKey(id construct.ID) charKey {
	value, _ := e.stores.Characteristics.Value(id)
	return charKey{
		value:    value,
		datatype: e.stores.Characteristics.Datatype(id),
		scope:    e.stores.ScopeOf(id),
	}
}

func (e *Engine) roleKey(id construct.ID) roleKey {
	player, _ := e.stores.Associations.Player(id)
	return roleKey{typ: e.stores.TypeOf(id), player: player}
}

// roleSetKey renders a set of role keys canonically; repeated pairs count once.
func roleSetKey(keys []roleKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d:%d", k.typ, k.player))
	}
	slices.Sort(parts)
	return strings.Join(slices.Compact(parts), ",")
}

func (e *Engine) associationKey(id construct.ID) string {
	roles := e.stores.Associations.Roles(id)
	keys := make([]roleKey, len(roles))
	for i, r := range roles {
		keys[i] = e.roleKey(r)
	}
	return fmt.Sprintf("%d|%s|%s", e.stores.TypeOf(id), e.stores.ScopeOf(id), roleSetKey(keys))
}

// findDuplicate returns the first pair of ids sharing a key. ids are in
// ascending order, so the survivor is always the older construct.
func findDuplicate[K comparable](ids []construct.ID, key func(construct.ID) K) (survivor, duplicate construct.ID, found bool) {
	seen := make(map[K]construct.ID, len(ids))
	for _, id := range ids {
		k := key(id)
		if first, ok := seen[k]; ok {
			return first, id, true
		}
		seen[k] = id
	}
	return construct.NoID, construct.NoID, false
}

func orEmpty(scope *scopestore.Scope) *scopestore.Scope {
	if scope == nil {
		return scopestore.Empty()
	}
	return scope
}

// RoleSpec describes one role of an association by its key.
type RoleSpec struct {
	Type   construct.ID
	Player construct.ID
}

// FindName returns the name of topic equal to (typ, value, scope).
func (e *Engine) FindName(topic, typ construct.ID, value string, scope *scopestore.Scope) (construct.ID, bool) {
	want := charKey{typ: typ, value: value, scope: orEmpty(scope)}
	for _, n := range e.stores.Characteristics.Names(topic) {
		if e.nameKey(n) == want {
			return n, true
		}
	}
	return construct.NoID, false
}

// FindOccurrence returns the occurrence of topic equal to (typ, value,
// datatype, scope).
func (e *Engine) FindOccurrence(topic, typ construct.ID, value string, datatype construct.Locator, scope *scopestore.Scope) (construct.ID, bool) {
	want := charKey{typ: typ, value: value, datatype: datatype, scope: orEmpty(scope)}
	for _, o := range e.stores.Characteristics.Occurrences(topic) {
		if e.occurrenceKey(o) == want {
			return o, true
		}
	}
	return construct.NoID, false
}

// FindVariant returns the variant of name equal to (value, datatype,
// effective scope).
func (e *Engine) FindVariant(name construct.ID, value string, datatype construct.Locator, scope *scopestore.Scope) (construct.ID, bool) {
	want := charKey{value: value, datatype: datatype, scope: orEmpty(scope)}
	for _, v := range e.stores.Characteristics.Variants(name) {
		if e.variantKey(v) == want {
			return v, true
		}
	}
	return construct.NoID, false
}

// FindRole returns the role of association with the given type and player.
func (e *Engine) FindRole(association, typ, player construct.ID) (construct.ID, bool) {
	want := roleKey{typ: typ, player: player}
	for _, r := range e.stores.Associations.Roles(association) {
		if e.roleKey(r) == want {
			return r, true
		}
	}
	return construct.NoID, false
}

// FindAssociation returns the association equal to (typ, scope, roles).
func (e *Engine) FindAssociation(typ construct.ID, scope *scopestore.Scope, roles []RoleSpec) (construct.ID, bool) {
	keys := make([]roleKey, len(roles))
	for i, r := range roles {
		keys[i] = roleKey{typ: r.Type, player: r.Player}
	}
	want := fmt.Sprintf("%d|%s|%s", typ, orEmpty(scope), roleSetKey(keys))
	for _, a := range e.stores.Typed.TypedBy(typ, construct.KindAssociation) {
		if e.associationKey(a) == want {
			return a, true
		}
	}
	return construct.NoID, false
}
