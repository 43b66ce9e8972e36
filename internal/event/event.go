// Package event defines the notification contract through which history,
// metrics and logging observe structural changes of a topic map.
//
// Exactly one event is emitted per logical change. A merge emits one event
// for every edge it moves, so an observer can replay the whole cascade.
package event

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
)

// Kind names the change an Event reports.
type Kind string

const (
	TopicAdded   Kind = "topic_added"
	TopicRemoved Kind = "topic_removed"
	// TopicsMerged is reported on the surviving topic; Old is the absorbed one.
	TopicsMerged Kind = "topics_merged"

	NameAdded         Kind = "name_added"
	NameRemoved       Kind = "name_removed"
	OccurrenceAdded   Kind = "occurrence_added"
	OccurrenceRemoved Kind = "occurrence_removed"
	VariantAdded      Kind = "variant_added"
	VariantRemoved    Kind = "variant_removed"

	AssociationAdded   Kind = "association_added"
	AssociationRemoved Kind = "association_removed"
	RoleAdded          Kind = "role_added"
	RoleRemoved        Kind = "role_removed"

	ItemIdentifierAdded      Kind = "item_identifier_added"
	ItemIdentifierRemoved    Kind = "item_identifier_removed"
	SubjectIdentifierAdded   Kind = "subject_identifier_added"
	SubjectIdentifierRemoved Kind = "subject_identifier_removed"
	SubjectLocatorAdded      Kind = "subject_locator_added"
	SubjectLocatorRemoved    Kind = "subject_locator_removed"

	TopicTypeAdded   Kind = "topic_type_added"
	TopicTypeRemoved Kind = "topic_type_removed"
	SupertypeAdded   Kind = "supertype_added"
	SupertypeRemoved Kind = "supertype_removed"

	TypeSet     Kind = "type_set"
	ScopeSet    Kind = "scope_set"
	ValueSet    Kind = "value_set"
	DatatypeSet Kind = "datatype_set"
	PlayerSet   Kind = "player_set"
	ReifierSet  Kind = "reifier_set"
	ParentSet   Kind = "parent_set"
)

// Event is one structural change. Construct is the construct whose state
// changed; New and Old carry the attribute values after and before the
// change, or the added and removed construct for containment events.
type Event struct {
	Kind      Kind
	Construct construct.Ref
	New       any
	Old       any
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s new=%v old=%v", e.Kind, e.Construct, e.New, e.Old)
}

// Sink receives events. Implementations must not call back into the topic
// map that emits them.
type Sink interface {
	OnEvent(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

// OnEvent calls f.
func (f SinkFunc) OnEvent(ctx context.Context, e Event) { f(ctx, e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) {})

// Fanout delivers every event to each sink in order.
type Fanout []Sink

// OnEvent implements Sink.
func (f Fanout) OnEvent(ctx context.Context, e Event) {
	for _, s := range f {
		s.OnEvent(ctx, e)
	}
}
