// Package scopestore canonicalizes theme sets into shared Scope objects and
// indexes which construct is scoped by which scope.
//
// Names, occurrences and associations store their full scope. A variant
// stores only its own themes; its effective scope is the union of those
// themes and the current scope of its parent name, computed on read. The
// reverse index is kept on effective scopes, so rescoping a name moves its
// variants in the index as well.
package scopestore

import (
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Rescoped is one scope edge rewritten by Replace.
type Rescoped struct {
	Construct construct.Ref
	Old       *Scope
	New       *Scope
}

// Store is the scope relation of one topic map.
type Store struct {
	scopes  map[string]*Scope
	byTheme map[construct.ID]map[*Scope]struct{}

	scopeOf map[construct.ID]*Scope // full scope, or own themes for variants
	kindOf  map[construct.ID]construct.Kind
	direct  map[*Scope]construct.IDSet

	// reverse index on effective scope
	scoped    map[*Scope]construct.IDSet
	indexedAs map[construct.ID]*Scope

	variantParent map[construct.ID]construct.ID
	variantsOf    map[construct.ID]construct.IDSet
}

// New creates an empty scope store.
func New() *Store {
	return &Store{
		scopes:        make(map[string]*Scope),
		byTheme:       make(map[construct.ID]map[*Scope]struct{}),
		scopeOf:       make(map[construct.ID]*Scope),
		kindOf:        make(map[construct.ID]construct.Kind),
		direct:        make(map[*Scope]construct.IDSet),
		scoped:        make(map[*Scope]construct.IDSet),
		indexedAs:     make(map[construct.ID]*Scope),
		variantParent: make(map[construct.ID]construct.ID),
		variantsOf:    make(map[construct.ID]construct.IDSet),
	}
}

// InternScope returns the canonical scope for themes, creating it on first
// use. Order and repetition of themes do not matter.
func (s *Store) InternScope(themes ...construct.ID) *Scope {
	sorted, key := canonical(themes)
	if len(sorted) == 0 {
		return Empty()
	}
	if sc, ok := s.scopes[key]; ok {
		return sc
	}
	sc := &Scope{themes: sorted, key: key}
	s.scopes[key] = sc
	for _, theme := range sorted {
		if s.byTheme[theme] == nil {
			s.byTheme[theme] = make(map[*Scope]struct{})
		}
		s.byTheme[theme][sc] = struct{}{}
	}
	return sc
}

// Union returns the canonical scope holding the themes of a and b.
func (s *Store) Union(a, b *Scope) *Scope {
	if b.IsEmpty() {
		return a
	}
	if a.IsEmpty() {
		return b
	}
	return s.InternScope(append(a.Themes(), b.themes...)...)
}

// SetScope scopes a name, occurrence or association. It returns the previous
// scope (Empty when the construct was unscoped).
func (s *Store) SetScope(ref construct.Ref, scope *Scope) (*Scope, error) {
	switch ref.Kind {
	case construct.KindName, construct.KindOccurrence, construct.KindAssociation:
	case construct.KindVariant:
		return nil, fmt.Errorf("%w: variant scope is set with SetVariantScope", construct.ErrUnsupported)
	case construct.KindTopicMap, construct.KindTopic, construct.KindRole, construct.KindInvalid:
		return nil, fmt.Errorf("%w: %s is not scoped", construct.ErrUnsupported, ref.Kind)
	}
	if scope == nil {
		scope = Empty()
	}
	old := s.scopeOf[ref.ID]
	if old == nil {
		old = Empty()
	}
	s.kindOf[ref.ID] = ref.Kind
	s.store(ref.ID, scope)
	s.reindex(ref.ID, scope)

	if ref.Kind == construct.KindName {
		for v := range s.variantsOf[ref.ID] {
			s.reindex(v, s.effective(v))
		}
	}
	return old, nil
}

// SetVariantScope sets the own themes of variant and attaches it to its
// parent name, which must already be scoped.
func (s *Store) SetVariantScope(variant, name construct.ID, own *Scope) (*Scope, error) {
	if s.kindOf[name] != construct.KindName {
		return nil, construct.Unknown("scoped name", name)
	}
	if parent, ok := s.variantParent[variant]; ok && parent != name {
		return nil, fmt.Errorf("%w: variant %s belongs to name %s", construct.ErrUnsupported, variant, parent)
	}
	if own == nil {
		own = Empty()
	}
	old := s.scopeOf[variant]
	if old == nil {
		old = Empty()
	}
	s.kindOf[variant] = construct.KindVariant
	s.store(variant, own)
	s.variantParent[variant] = name
	if s.variantsOf[name] == nil {
		s.variantsOf[name] = construct.IDSet{}
	}
	s.variantsOf[name].Add(variant)
	s.reindex(variant, s.effective(variant))
	return old, nil
}

// MoveVariant reattaches variant to another name, keeping its own themes.
func (s *Store) MoveVariant(variant, name construct.ID) error {
	parent, ok := s.variantParent[variant]
	if !ok {
		return construct.Unknown("variant", variant)
	}
	if s.kindOf[name] != construct.KindName {
		return construct.Unknown("scoped name", name)
	}
	s.variantsOf[parent].Remove(variant)
	s.variantParent[variant] = name
	if s.variantsOf[name] == nil {
		s.variantsOf[name] = construct.IDSet{}
	}
	s.variantsOf[name].Add(variant)
	s.reindex(variant, s.effective(variant))
	return nil
}

// Scope returns the effective scope of id. For variants it is the union of
// the variant's own themes and the parent name's current scope.
func (s *Store) Scope(id construct.ID) (*Scope, bool) {
	if _, ok := s.scopeOf[id]; !ok {
		return nil, false
	}
	return s.effective(id), true
}

// OwnScope returns the stored scope of id; for variants the own themes only.
func (s *Store) OwnScope(id construct.ID) (*Scope, bool) {
	sc, ok := s.scopeOf[id]
	return sc, ok
}

func (s *Store) effective(id construct.ID) *Scope {
	own := s.scopeOf[id]
	if s.kindOf[id] != construct.KindVariant {
		return own
	}
	parent := s.scopeOf[s.variantParent[id]]
	if parent == nil {
		return own
	}
	return s.Union(parent, own)
}

func (s *Store) store(id construct.ID, scope *Scope) {
	if old, ok := s.scopeOf[id]; ok {
		s.direct[old].Remove(id)
		if s.direct[old].Len() == 0 {
			delete(s.direct, old)
		}
	}
	s.scopeOf[id] = scope
	if s.direct[scope] == nil {
		s.direct[scope] = construct.IDSet{}
	}
	s.direct[scope].Add(id)
}

func (s *Store) reindex(id construct.ID, scope *Scope) {
	if old, ok := s.indexedAs[id]; ok {
		if old == scope {
			return
		}
		s.scoped[old].Remove(id)
		if s.scoped[old].Len() == 0 {
			delete(s.scoped, old)
		}
	}
	if s.scoped[scope] == nil {
		s.scoped[scope] = construct.IDSet{}
	}
	s.scoped[scope].Add(id)
	s.indexedAs[id] = scope
}

// Scoped returns the constructs whose effective scope is scope.
func (s *Store) Scoped(scope *Scope) []construct.Ref {
	ids := s.scoped[scope].Sorted()
	refs := make([]construct.Ref, len(ids))
	for i, id := range ids {
		refs[i] = construct.Ref{Kind: s.kindOf[id], ID: id}
	}
	return refs
}

// Variants returns the variants attached to name in this store.
func (s *Store) Variants(name construct.ID) []construct.ID {
	return s.variantsOf[name].Sorted()
}

// Scopes returns every scope currently used by at least one construct.
func (s *Store) Scopes() []*Scope {
	out := make([]*Scope, 0, len(s.scoped))
	for sc := range s.scoped {
		out = append(out, sc)
	}
	return out
}

// RemoveScoped dissolves the scope edge of id. The Scope itself survives;
// other constructs may still use it. A name must lose its variants first.
func (s *Store) RemoveScoped(id construct.ID) error {
	if _, ok := s.scopeOf[id]; !ok {
		return nil
	}
	if s.variantsOf[id].Len() > 0 {
		return fmt.Errorf("%w: name %s still has scoped variants", construct.ErrUnsupported, id)
	}
	if old, ok := s.indexedAs[id]; ok {
		s.scoped[old].Remove(id)
		if s.scoped[old].Len() == 0 {
			delete(s.scoped, old)
		}
	}
	if parent, ok := s.variantParent[id]; ok {
		s.variantsOf[parent].Remove(id)
		if s.variantsOf[parent].Len() == 0 {
			delete(s.variantsOf, parent)
		}
		delete(s.variantParent, id)
	}
	if old, ok := s.scopeOf[id]; ok {
		s.direct[old].Remove(id)
		if s.direct[old].Len() == 0 {
			delete(s.direct, old)
		}
	}
	delete(s.variantsOf, id)
	delete(s.indexedAs, id)
	delete(s.scopeOf, id)
	delete(s.kindOf, id)
	return nil
}

// ScopesContainingTheme returns every interned scope naming theme.
func (s *Store) ScopesContainingTheme(theme construct.ID) []*Scope {
	out := make([]*Scope, 0, len(s.byTheme[theme]))
	for sc := range s.byTheme[theme] {
		out = append(out, sc)
	}
	return out
}

// DirectlyScoped returns the constructs whose stored scope (own themes for
// variants) is scope.
func (s *Store) DirectlyScoped(scope *Scope) []construct.Ref {
	ids := s.direct[scope].Sorted()
	refs := make([]construct.Ref, len(ids))
	for i, id := range ids {
		refs[i] = construct.Ref{Kind: s.kindOf[id], ID: id}
	}
	return refs
}

// Replace substitutes replacement for topic in every scope naming topic and
// migrates the constructs stored under the old scopes to the canonical
// substituted scopes. Only the merge engine calls it.
func (s *Store) Replace(topic, replacement construct.ID) []Rescoped {
	return s.rewrite(topic, func(themes []construct.ID) []construct.ID {
		for i, t := range themes {
			if t == topic {
				themes[i] = replacement
			}
		}
		return themes
	})
}

// RemoveTheme drops theme from every scope naming it and migrates the
// affected constructs. Used when a topic is removed with cascading.
func (s *Store) RemoveTheme(theme construct.ID) []Rescoped {
	return s.rewrite(theme, func(themes []construct.ID) []construct.ID {
		out := themes[:0]
		for _, t := range themes {
			if t != theme {
				out = append(out, t)
			}
		}
		return out
	})
}

func (s *Store) rewrite(theme construct.ID, substitute func([]construct.ID) []construct.ID) []Rescoped {
	var changed []Rescoped
	for _, old := range s.ScopesContainingTheme(theme) {
		repl := s.InternScope(substitute(old.Themes())...)
		for _, ref := range s.DirectlyScoped(old) {
			s.store(ref.ID, repl)
			changed = append(changed, Rescoped{Construct: ref, Old: old, New: repl})
		}
		s.retire(old)
	}
	// The reverse index follows effective scopes, which also move for the
	// variants of rescoped names.
	for _, c := range changed {
		s.reindex(c.Construct.ID, s.effective(c.Construct.ID))
		for v := range s.variantsOf[c.Construct.ID] {
			s.reindex(v, s.effective(v))
		}
	}
	return sortRescoped(changed)
}

// retire drops a scope from the canonical table once nothing can use it.
func (s *Store) retire(sc *Scope) {
	delete(s.scopes, sc.key)
	for _, t := range sc.themes {
		delete(s.byTheme[t], sc)
		if len(s.byTheme[t]) == 0 {
			delete(s.byTheme, t)
		}
	}
}
