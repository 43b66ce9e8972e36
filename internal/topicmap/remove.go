package topicmap

import (
	"context"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// RemoveTopic removes a topic with its names and occurrences. A topic still
// used as a type, player, theme, reifier or topic type is refused with
// construct.ErrTopicInUse.
func (tm *TopicMap) RemoveTopic(ctx context.Context, topic construct.ID) error {
	return tm.removeTopic(ctx, topic, false)
}

// RemoveTopicCascade removes a topic together with everything typed by it
// and every role it plays, and drops it from scopes and reification.
func (tm *TopicMap) RemoveTopicCascade(ctx context.Context, topic construct.ID) error {
	return tm.removeTopic(ctx, topic, true)
}

func (tm *TopicMap) removeTopic(ctx context.Context, topic construct.ID, cascade bool) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, err := tm.topic(topic)
	if err != nil {
		return err
	}
	return tm.engine.RemoveTopic(ctx, id, cascade)
}

// Remove removes a name, occurrence, variant, association or role.
func (tm *TopicMap) Remove(ctx context.Context, ref construct.Ref) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	r, err := tm.ref(ref)
	if err != nil {
		return err
	}
	switch r.Kind {
	case construct.KindName:
		return tm.engine.RemoveName(ctx, r.ID)
	case construct.KindOccurrence:
		return tm.engine.RemoveOccurrence(ctx, r.ID)
	case construct.KindVariant:
		return tm.engine.RemoveVariant(ctx, r.ID)
	case construct.KindAssociation:
		return tm.engine.RemoveAssociation(ctx, r.ID)
	case construct.KindRole:
		return tm.engine.RemoveRole(ctx, r.ID)
	case construct.KindTopic:
		return tm.engine.RemoveTopic(ctx, r.ID, false)
	case construct.KindTopicMap, construct.KindInvalid:
	}
	return construct.Unknown(r.Kind.String(), r.ID)
}
