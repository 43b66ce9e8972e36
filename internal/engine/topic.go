package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/specialistvlad/topicmapgo/internal/topictypestore"
)

// TopicUsage reports what keeps a topic from being removed on its own. A
// zero value means the topic is free.
type TopicUsage struct {
	Type      bool // types a name, occurrence, association or role
	Player    bool
	Theme     bool
	Reifier   bool
	TopicType bool // type or supertype of another topic
}

// InUse reports whether any usage is set.
func (u TopicUsage) InUse() bool {
	return u.Type || u.Player || u.Theme || u.Reifier || u.TopicType
}

func (u TopicUsage) String() string {
	var out []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{u.Type, "type"}, {u.Player, "player"}, {u.Theme, "theme"},
		{u.Reifier, "reifier"}, {u.TopicType, "topic type"},
	} {
		if f.set {
			out = append(out, f.name)
		}
	}
	return fmt.Sprint(out)
}

// Usage reports how topic is referenced from outside itself.
func (e *Engine) Usage(topic construct.ID) TopicUsage {
	s := e.stores
	_, reifies := s.Reification.Reified(topic)
	return TopicUsage{
		Type:      s.Typed.IsUsedAsType(topic),
		Player:    s.Associations.IsPlayer(topic),
		Theme:     e.isTheme(topic),
		Reifier:   reifies,
		TopicType: s.TopicTypes.IsUsedByOthers(topic),
	}
}

func (e *Engine) isTheme(topic construct.ID) bool {
	for _, sc := range e.stores.Scopes.ScopesContainingTheme(topic) {
		if len(e.stores.Scopes.DirectlyScoped(sc)) > 0 {
			return true
		}
	}
	return false
}

// RemoveTopic removes topic with its names and occurrences. Without cascade
// a topic still in use is refused with ErrTopicInUse. With cascade every
// construct typed by topic and every role it plays is removed, scopes drop
// it as a theme, its reification edge and topic type edges go, and the
// constructs touched are checked for duplicates.
func (e *Engine) RemoveTopic(ctx context.Context, topic construct.ID, cascade bool) error {
	s := e.stores
	if !s.Identity.IsKind(topic, construct.KindTopic) {
		return construct.Unknown("topic", topic)
	}
	if usage := e.Usage(topic); usage.InUse() && !cascade {
		return fmt.Errorf("%w: topic %s is used as %s", construct.ErrTopicInUse, topic, usage)
	}
	touched := newAffected()

	for _, ref := range s.Typed.RemoveType(topic) {
		if err := e.removeOrphan(ctx, ref, touched); err != nil {
			return err
		}
	}
	for _, role := range s.Associations.RolesPlayed(topic) {
		if assoc, ok := s.Associations.Association(role); ok {
			touched.assocs.Add(assoc)
		}
		if err := e.removeRole(ctx, role, construct.Ref{}); err != nil {
			return err
		}
	}
	for _, name := range s.Characteristics.Names(topic) {
		if err := e.removeName(ctx, name, construct.Ref{}); err != nil {
			return err
		}
	}
	for _, occ := range s.Characteristics.Occurrences(topic) {
		if err := e.removeOccurrence(ctx, occ, construct.Ref{}); err != nil {
			return err
		}
	}
	for _, r := range s.Scopes.RemoveTheme(topic) {
		e.Emit(ctx, event.ScopeSet, r.Construct, r.New, r.Old)
		touched.note(s, r.Construct)
	}
	if reified, ok := s.Reification.RemoveReifier(topic); ok {
		e.Emit(ctx, event.ReifierSet, reified, construct.NoID, topic)
	}
	for _, edge := range s.TopicTypes.RemoveTopic(topic) {
		kind := event.TopicTypeRemoved
		if edge.Kind == topictypestore.SupertypeSubtype {
			kind = event.SupertypeRemoved
		}
		e.Emit(ctx, kind, construct.TopicRef(edge.From), nil, edge.To)
	}
	s.Identity.RemoveConstruct(topic)
	e.Emit(ctx, event.TopicRemoved, s.MapRef(), nil, construct.TopicRef(topic))
	ctxlog.FromContext(ctx).Debug("Topic removed.", "topic", topic, "cascade", cascade)

	touched.topics.Remove(topic)
	return e.run(ctx, touched.tasks())
}

// removeOrphan deletes a construct that lost its type. It may already be
// gone with its parent.
func (e *Engine) removeOrphan(ctx context.Context, ref construct.Ref, touched *affected) error {
	if !e.stores.Identity.IsKind(ref.ID, ref.Kind) {
		return nil
	}
	switch ref.Kind {
	case construct.KindName:
		return e.removeName(ctx, ref.ID, construct.Ref{})
	case construct.KindOccurrence:
		return e.removeOccurrence(ctx, ref.ID, construct.Ref{})
	case construct.KindAssociation:
		return e.removeAssociation(ctx, ref.ID, construct.Ref{})
	case construct.KindRole:
		touched.note(e.stores, ref)
		return e.removeRole(ctx, ref.ID, construct.Ref{})
	case construct.KindTopicMap, construct.KindTopic, construct.KindVariant, construct.KindInvalid:
	}
	return fmt.Errorf("%w: %s cannot be typed", construct.ErrUnsupported, ref.Kind)
}
