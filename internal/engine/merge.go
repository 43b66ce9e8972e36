package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/specialistvlad/topicmapgo/internal/identitystore"
	"github.com/specialistvlad/topicmapgo/internal/topictypestore"
)

// identifierAdded maps an identifier kind to the event reporting its
// arrival on a construct.
func identifierAdded(kind identitystore.IdentifierKind) event.Kind {
	switch kind {
	case identitystore.SubjectIdentifier:
		return event.SubjectIdentifierAdded
	case identitystore.SubjectLocator:
		return event.SubjectLocatorAdded
	}
	return event.ItemIdentifierAdded
}

// affected collects the topics and associations whose duplicate keys may
// have changed.
type affected struct {
	topics construct.IDSet
	assocs construct.IDSet
}

func newAffected() *affected {
	return &affected{topics: construct.IDSet{}, assocs: construct.IDSet{}}
}

func (a *affected) note(s *Stores, ref construct.Ref) {
	switch ref.Kind {
	case construct.KindTopic:
		a.topics.Add(ref.ID)
	case construct.KindName, construct.KindOccurrence, construct.KindVariant:
		if topic, ok := s.OwnerTopic(ref); ok {
			a.topics.Add(topic)
		}
	case construct.KindAssociation:
		a.assocs.Add(ref.ID)
	case construct.KindRole:
		if assoc, ok := s.Associations.Association(ref.ID); ok {
			a.assocs.Add(assoc)
		}
	case construct.KindTopicMap, construct.KindInvalid:
	}
}

func (a *affected) tasks() []task {
	out := make([]task, 0, a.topics.Len()+a.assocs.Len())
	for _, t := range a.topics.Sorted() {
		out = append(out, topicTask(t))
	}
	for _, as := range a.assocs.Sorted() {
		out = append(out, associationTask(as))
	}
	return out
}

// merge moves every edge of other onto target, one event per moved edge,
// removes other and schedules duplicate checks for everything touched.
func (e *Engine) merge(ctx context.Context, target, other construct.ID) ([]task, error) {
	target, other = e.Resolve(target), e.Resolve(other)
	if target == other || !e.stores.Identity.IsKind(other, construct.KindTopic) {
		return nil, nil
	}
	if !e.stores.Identity.IsKind(target, construct.KindTopic) {
		return nil, construct.Unknown("topic", target)
	}
	s := e.stores
	if err := s.Reification.CheckReplace(other, target); err != nil {
		return nil, err
	}
	from := construct.TopicRef(other)
	touched := newAffected()
	touched.topics.Add(target)

	for _, id := range s.Identity.Replace(other, target) {
		e.Emit(ctx, identifierAdded(id.Kind), construct.TopicRef(target), id.Locator, from)
	}
	for _, r := range s.Typed.Replace(other, target) {
		e.Emit(ctx, event.TypeSet, r.Construct, r.New, r.Old)
		touched.note(s, r.Construct)
	}
	for _, edge := range s.TopicTypes.Replace(other, target) {
		kind := event.TopicTypeAdded
		if edge.Kind == topictypestore.SupertypeSubtype {
			kind = event.SupertypeAdded
		}
		e.Emit(ctx, kind, construct.TopicRef(edge.From), edge.To, from)
	}
	for _, r := range s.Scopes.Replace(other, target) {
		e.Emit(ctx, event.ScopeSet, r.Construct, r.New, r.Old)
		touched.note(s, r.Construct)
	}
	for _, r := range s.Associations.Replace(other, target) {
		e.Emit(ctx, event.PlayerSet, construct.RoleRef(r.Role), target, other)
		touched.assocs.Add(r.Association)
	}
	for _, m := range s.Characteristics.Replace(other, target) {
		e.Emit(ctx, event.ParentSet, m.Construct, m.NewParent, m.OldParent)
	}
	reified, moved, err := s.Reification.Replace(other, target)
	if err != nil {
		return nil, err
	}
	if moved {
		e.Emit(ctx, event.ReifierSet, reified, target, other)
	}

	s.TopicTypes.RemoveTopic(other)
	s.Identity.RemoveConstruct(other)
	e.forward[other] = target
	e.stats.Merges++
	e.Emit(ctx, event.TopicsMerged, construct.TopicRef(target), nil, from)
	ctxlog.FromContext(ctx).Debug("Topic absorbed.", "target", target, "other", other)

	// Owners noted before the characteristics moved may still name other.
	next := touched.tasks()
	for i, t := range next {
		if t.kind == taskTopic {
			next[i].a = e.Resolve(t.a)
		}
	}
	return next, nil
}

// checkTopic collapses at most one duplicate pair among the names,
// variants and occurrences of topic. When it collapses something it
// schedules itself again, after any reifier merge the collapse needs.
func (e *Engine) checkTopic(ctx context.Context, topic construct.ID) ([]task, error) {
	topic = e.Resolve(topic)
	s := e.stores
	if !s.Identity.IsKind(topic, construct.KindTopic) {
		return nil, nil
	}
	names := s.Characteristics.Names(topic)
	if survivor, dup, ok := findDuplicate(names, e.nameKey); ok {
		return e.collapseName(ctx, topic, survivor, dup)
	}
	for _, name := range names {
		if survivor, dup, ok := findDuplicate(s.Characteristics.Variants(name), e.variantKey); ok {
			return e.collapseLeaf(ctx, topicTask(topic), construct.VariantRef(survivor), construct.VariantRef(dup))
		}
	}
	if survivor, dup, ok := findDuplicate(s.Characteristics.Occurrences(topic), e.occurrenceKey); ok {
		return e.collapseLeaf(ctx, topicTask(topic), construct.OccurrenceRef(survivor), construct.OccurrenceRef(dup))
	}
	return nil, nil
}

// checkAssociation collapses duplicate roles inside assoc first, then an
// association equal to assoc, one pair per call.
func (e *Engine) checkAssociation(ctx context.Context, assoc construct.ID) ([]task, error) {
	assoc = e.Resolve(assoc)
	s := e.stores
	if !s.Identity.IsKind(assoc, construct.KindAssociation) {
		return nil, nil
	}
	if survivor, dup, ok := findDuplicate(s.Associations.Roles(assoc), e.roleKey); ok {
		return e.collapseLeaf(ctx, associationTask(assoc), construct.RoleRef(survivor), construct.RoleRef(dup))
	}
	key := e.associationKey(assoc)
	for _, other := range s.Typed.TypedBy(s.TypeOf(assoc), construct.KindAssociation) {
		if other == assoc || e.associationKey(other) != key {
			continue
		}
		survivor, dup := min(assoc, other), max(assoc, other)
		return e.collapseAssociation(ctx, survivor, dup)
	}
	return nil, nil
}

// absorb hands the reifier and item identifiers of dup over to survivor.
// When both are reified the reifiers have to merge; the returned task does
// that once dup no longer holds its reifier.
func (e *Engine) absorb(ctx context.Context, survivor, dup construct.Ref) (*task, error) {
	s := e.stores
	for _, loc := range s.Identity.MoveItemIdentifiers(dup.ID, survivor.ID) {
		e.Emit(ctx, event.ItemIdentifierAdded, survivor, loc, dup)
	}
	dupReifier, ok := s.Reification.RemoveReification(dup.ID)
	if !ok {
		return nil, nil
	}
	e.Emit(ctx, event.ReifierSet, dup, construct.NoID, dupReifier)
	if reifier, ok := s.Reification.Reifier(survivor.ID); ok {
		t := mergeTask(reifier, dupReifier)
		return &t, nil
	}
	if _, err := s.Reification.SetReifier(survivor, dupReifier); err != nil {
		return nil, fmt.Errorf("failed to move reifier %s to %s: %w", dupReifier, survivor, err)
	}
	e.Emit(ctx, event.ReifierSet, survivor, dupReifier, construct.NoID)
	return nil, nil
}

// followUp orders the tasks after a collapse: reifier merges first, then
// the re-check.
func followUp(recheck task, merges ...*task) []task {
	var out []task
	for _, m := range merges {
		if m != nil {
			out = append(out, *m)
		}
	}
	return append(out, recheck)
}

func (e *Engine) collapsed(ctx context.Context, survivor, dup construct.Ref) {
	e.forward[dup.ID] = survivor.ID
	e.stats.Collapsed++
	ctxlog.FromContext(ctx).Debug("Collapsed duplicate.", "kind", dup.Kind.String(), "survivor", survivor.ID, "duplicate", dup.ID)
}

func (e *Engine) collapseName(ctx context.Context, topic, survivor, dup construct.ID) ([]task, error) {
	s := e.stores
	merge, err := e.absorb(ctx, construct.NameRef(survivor), construct.NameRef(dup))
	if err != nil {
		return nil, err
	}
	for _, v := range s.Characteristics.Variants(dup) {
		if err := s.Characteristics.MoveVariant(v, survivor); err != nil {
			return nil, err
		}
		if err := s.Scopes.MoveVariant(v, survivor); err != nil {
			return nil, err
		}
		e.Emit(ctx, event.ParentSet, construct.VariantRef(v), survivor, dup)
	}
	if err := e.removeName(ctx, dup, construct.NameRef(survivor)); err != nil {
		return nil, err
	}
	e.collapsed(ctx, construct.NameRef(survivor), construct.NameRef(dup))
	return followUp(topicTask(topic), merge), nil
}

// collapseLeaf collapses occurrences, variants and roles, which own nothing
// but identifiers and a reifier.
func (e *Engine) collapseLeaf(ctx context.Context, recheck task, survivor, dup construct.Ref) ([]task, error) {
	merge, err := e.absorb(ctx, survivor, dup)
	if err != nil {
		return nil, err
	}
	switch dup.Kind {
	case construct.KindOccurrence:
		err = e.removeOccurrence(ctx, dup.ID, survivor)
	case construct.KindVariant:
		err = e.removeVariant(ctx, dup.ID, survivor)
	case construct.KindRole:
		err = e.removeRole(ctx, dup.ID, survivor)
	case construct.KindTopicMap, construct.KindTopic, construct.KindName, construct.KindAssociation, construct.KindInvalid:
		err = fmt.Errorf("%w: %s is not a leaf construct", construct.ErrUnsupported, dup.Kind)
	}
	if err != nil {
		return nil, err
	}
	e.collapsed(ctx, survivor, dup)
	return followUp(recheck, merge), nil
}

func (e *Engine) collapseAssociation(ctx context.Context, survivor, dup construct.ID) ([]task, error) {
	s := e.stores
	var merges []*task
	merge, err := e.absorb(ctx, construct.AssociationRef(survivor), construct.AssociationRef(dup))
	if err != nil {
		return nil, err
	}
	merges = append(merges, merge)

	for _, role := range s.Associations.Roles(dup) {
		k := e.roleKey(role)
		match, ok := e.FindRole(survivor, k.typ, k.player)
		if !ok {
			return nil, fmt.Errorf("%w: association %s has no role matching %s", construct.ErrUnsupported, survivor, role)
		}
		merge, err := e.absorb(ctx, construct.RoleRef(match), construct.RoleRef(role))
		if err != nil {
			return nil, err
		}
		merges = append(merges, merge)
		e.forward[role] = match
	}
	if err := e.removeAssociation(ctx, dup, construct.AssociationRef(survivor)); err != nil {
		return nil, err
	}
	e.collapsed(ctx, construct.AssociationRef(survivor), construct.AssociationRef(dup))
	return followUp(associationTask(survivor), merges...), nil
}
