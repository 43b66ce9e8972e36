package topicmap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// CreateTopic creates a topic with no subject identity. With
// AutoItemIdentifiers set it receives a generated item identifier.
func (tm *TopicMap) CreateTopic(ctx context.Context) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.createTopic(ctx, true)
}

func (tm *TopicMap) createTopic(ctx context.Context, anonymous bool) (construct.ID, error) {
	var iid construct.Locator
	if anonymous && tm.cfg.AutoItemIdentifiers {
		loc, err := construct.ParseLocator(tm.cfg.ItemIdentifierPrefix + uuid.NewString())
		if err != nil {
			return construct.NoID, fmt.Errorf("failed to generate item identifier: %w", err)
		}
		if _, taken := tm.stores.Identity.ByItemIdentifier(loc); taken {
			return construct.NoID, fmt.Errorf("%w: generated item identifier %s already in use", construct.ErrIdentityConstraint, loc)
		}
		iid = loc
	}
	ref, err := tm.register(construct.KindTopic)
	if err != nil {
		return construct.NoID, err
	}
	if iid != "" {
		if err := tm.stores.Identity.AddItemIdentifier(ref.ID, iid); err != nil {
			return construct.NoID, err
		}
	}
	tm.emit(ctx, event.TopicAdded, tm.Ref(), ref, nil)
	if iid != "" {
		tm.emit(ctx, event.ItemIdentifierAdded, ref, iid, nil)
	}
	return ref.ID, nil
}

// CreateTopicBySubjectIdentifier returns the topic identified by loc,
// creating it if no topic holds loc as subject or item identifier. A topic
// found through its item identifier gains loc as subject identifier.
func (tm *TopicMap) CreateTopicBySubjectIdentifier(ctx context.Context, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, ok, err := tm.topicIdentifiedBy(loc)
	if err != nil {
		return construct.NoID, err
	}
	if !ok {
		if id, err = tm.createTopic(ctx, false); err != nil {
			return construct.NoID, err
		}
	}
	return tm.addSubjectIdentifier(ctx, id, loc)
}

// CreateTopicBySubjectLocator returns the topic with subject locator loc,
// creating it if needed.
func (tm *TopicMap) CreateTopicBySubjectLocator(ctx context.Context, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if id, ok := tm.stores.Identity.BySubjectLocator(loc); ok {
		return id, nil
	}
	id, err := tm.createTopic(ctx, false)
	if err != nil {
		return construct.NoID, err
	}
	return tm.addSubjectLocator(ctx, id, loc)
}

// CreateTopicByItemIdentifier returns the topic identified by loc, creating
// it if needed. ErrIdentityConstraint is returned when loc identifies a
// construct that is not a topic.
func (tm *TopicMap) CreateTopicByItemIdentifier(ctx context.Context, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, ok, err := tm.topicIdentifiedBy(loc)
	if err != nil {
		return construct.NoID, err
	}
	if !ok {
		if id, err = tm.createTopic(ctx, false); err != nil {
			return construct.NoID, err
		}
	}
	return tm.addItemIdentifier(ctx, construct.TopicRef(id), loc)
}

// topicIdentifiedBy finds the topic holding loc as subject identifier or as
// item identifier. Both kinds are one identity space for topics.
func (tm *TopicMap) topicIdentifiedBy(loc construct.Locator) (construct.ID, bool, error) {
	if id, ok := tm.stores.Identity.BySubjectIdentifier(loc); ok {
		return id, true, nil
	}
	ref, ok := tm.stores.Identity.ByItemIdentifier(loc)
	if !ok {
		return construct.NoID, false, nil
	}
	if ref.Kind != construct.KindTopic {
		return construct.NoID, false, fmt.Errorf("%w: %s identifies %s, not a topic", construct.ErrIdentityConstraint, loc, ref)
	}
	return ref.ID, true, nil
}

// AddSubjectIdentifier adds loc to topic and returns the topic that holds
// it afterwards. When another topic is already identified by loc the two
// merge and that topic survives.
func (tm *TopicMap) AddSubjectIdentifier(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, err := tm.topic(topic)
	if err != nil {
		return construct.NoID, err
	}
	return tm.addSubjectIdentifier(ctx, id, loc)
}

func (tm *TopicMap) addSubjectIdentifier(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error) {
	owner, ok, err := tm.topicIdentifiedBy(loc)
	if err != nil {
		return construct.NoID, err
	}
	if ok && owner != topic {
		if topic, err = tm.mergeOnCollision(ctx, owner, topic, loc); err != nil {
			return construct.NoID, err
		}
	}
	if _, held := tm.stores.Identity.BySubjectIdentifier(loc); held {
		return topic, nil
	}
	if err := tm.stores.Identity.AddSubjectIdentifier(topic, loc); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.SubjectIdentifierAdded, construct.TopicRef(topic), loc, nil)
	return topic, nil
}

// AddSubjectLocator adds loc to topic, merging with the topic already
// holding it.
func (tm *TopicMap) AddSubjectLocator(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, err := tm.topic(topic)
	if err != nil {
		return construct.NoID, err
	}
	return tm.addSubjectLocator(ctx, id, loc)
}

func (tm *TopicMap) addSubjectLocator(ctx context.Context, topic construct.ID, loc construct.Locator) (construct.ID, error) {
	if owner, ok := tm.stores.Identity.BySubjectLocator(loc); ok {
		if owner == topic {
			return topic, nil
		}
		return tm.mergeOnCollision(ctx, owner, topic, loc)
	}
	if err := tm.stores.Identity.AddSubjectLocator(topic, loc); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.SubjectLocatorAdded, construct.TopicRef(topic), loc, nil)
	return topic, nil
}

// AddItemIdentifier adds loc to any construct and returns the handle that
// holds it afterwards. Topics merge with a topic already identified by loc;
// for any other collision ErrIdentityConstraint is returned.
func (tm *TopicMap) AddItemIdentifier(ctx context.Context, ref construct.Ref, loc construct.Locator) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	r, err := tm.ref(ref)
	if err != nil {
		return construct.NoID, err
	}
	return tm.addItemIdentifier(ctx, r, loc)
}

func (tm *TopicMap) addItemIdentifier(ctx context.Context, ref construct.Ref, loc construct.Locator) (construct.ID, error) {
	if ref.Kind == construct.KindTopic {
		owner, ok, err := tm.topicIdentifiedBy(loc)
		if err != nil {
			return construct.NoID, err
		}
		if ok && owner != ref.ID {
			if ref.ID, err = tm.mergeOnCollision(ctx, owner, ref.ID, loc); err != nil {
				return construct.NoID, err
			}
		}
	}
	if owner, ok := tm.stores.Identity.ByItemIdentifier(loc); ok {
		if owner.ID == ref.ID {
			return ref.ID, nil
		}
		return construct.NoID, fmt.Errorf("%w: item identifier %s already identifies %s", construct.ErrIdentityConstraint, loc, owner)
	}
	if err := tm.stores.Identity.AddItemIdentifier(ref.ID, loc); err != nil {
		return construct.NoID, err
	}
	tm.emit(ctx, event.ItemIdentifierAdded, ref, loc, nil)
	return ref.ID, nil
}

func (tm *TopicMap) mergeOnCollision(ctx context.Context, owner, topic construct.ID, loc construct.Locator) (construct.ID, error) {
	ctxlog.FromContext(ctx).Debug("Identifier collision, merging topics.", "locator", loc.String(), "owner", owner, "topic", topic)
	return tm.engine.MergeTopics(ctx, owner, topic)
}

// RemoveItemIdentifier detaches loc from the construct. It reports whether
// the construct held loc.
func (tm *TopicMap) RemoveItemIdentifier(ctx context.Context, ref construct.Ref, loc construct.Locator) (bool, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	r, err := tm.ref(ref)
	if err != nil {
		return false, err
	}
	if !tm.stores.Identity.RemoveItemIdentifier(r.ID, loc) {
		return false, nil
	}
	tm.emit(ctx, event.ItemIdentifierRemoved, r, nil, loc)
	return true, nil
}

// RemoveSubjectIdentifier detaches loc from topic.
func (tm *TopicMap) RemoveSubjectIdentifier(ctx context.Context, topic construct.ID, loc construct.Locator) (bool, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, err := tm.topic(topic)
	if err != nil {
		return false, err
	}
	if !tm.stores.Identity.RemoveSubjectIdentifier(id, loc) {
		return false, nil
	}
	tm.emit(ctx, event.SubjectIdentifierRemoved, construct.TopicRef(id), nil, loc)
	return true, nil
}

// RemoveSubjectLocator detaches loc from topic.
func (tm *TopicMap) RemoveSubjectLocator(ctx context.Context, topic construct.ID, loc construct.Locator) (bool, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id, err := tm.topic(topic)
	if err != nil {
		return false, err
	}
	if !tm.stores.Identity.RemoveSubjectLocator(id, loc) {
		return false, nil
	}
	tm.emit(ctx, event.SubjectLocatorRemoved, construct.TopicRef(id), nil, loc)
	return true, nil
}

// MergeTopics absorbs other into target and returns the survivor.
func (tm *TopicMap) MergeTopics(ctx context.Context, target, other construct.ID) (construct.ID, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.engine.MergeTopics(ctx, target, other)
}

// Resolve returns the construct addressed by loc: the holder of loc as item
// identifier, or else the topic holding it as subject identifier or subject
// locator. Absence is reported with false, never as an error.
func (tm *TopicMap) Resolve(loc construct.Locator) (construct.Ref, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if ref, ok := tm.stores.Identity.ByItemIdentifier(loc); ok {
		return ref, true
	}
	if id, ok := tm.stores.Identity.BySubjectIdentifier(loc); ok {
		return construct.TopicRef(id), true
	}
	if id, ok := tm.stores.Identity.BySubjectLocator(loc); ok {
		return construct.TopicRef(id), true
	}
	return construct.Ref{}, false
}

// ConstructByItemIdentifier returns the construct holding loc as item
// identifier.
func (tm *TopicMap) ConstructByItemIdentifier(loc construct.Locator) (construct.Ref, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.ByItemIdentifier(loc)
}

// TopicBySubjectIdentifier returns the topic holding loc as subject
// identifier.
func (tm *TopicMap) TopicBySubjectIdentifier(loc construct.Locator) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.BySubjectIdentifier(loc)
}

// TopicBySubjectLocator returns the topic holding loc as subject locator.
func (tm *TopicMap) TopicBySubjectLocator(loc construct.Locator) (construct.ID, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stores.Identity.BySubjectLocator(loc)
}
