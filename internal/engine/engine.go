package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

// Stats counts the work done by an Engine since it was created.
type Stats struct {
	// Merges counts topic merges, cascaded ones included.
	Merges int
	// Collapsed counts duplicate names, occurrences, variants, roles and
	// associations removed in favour of an equal survivor.
	Collapsed int
}

// Engine merges topics and collapses duplicates across the stores.
type Engine struct {
	stores *Stores
	sink   event.Sink

	// forward maps the handle of every merged or collapsed construct to the
	// construct that absorbed it.
	forward map[construct.ID]construct.ID
	stats   Stats
}

// New creates an engine over stores. A nil sink discards events.
func New(stores *Stores, sink event.Sink) *Engine {
	if sink == nil {
		sink = event.Discard
	}
	return &Engine{
		stores:  stores,
		sink:    sink,
		forward: make(map[construct.ID]construct.ID),
	}
}

// Stores returns the stores the engine works on.
func (e *Engine) Stores() *Stores { return e.stores }

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// Emit reports one change to the sink.
func (e *Engine) Emit(ctx context.Context, kind event.Kind, ref construct.Ref, newValue, oldValue any) {
	e.sink.OnEvent(ctx, event.Event{Kind: kind, Construct: ref, New: newValue, Old: oldValue})
}

// Resolve follows the merge history of id and returns the construct that
// now stands for it. Handles that were never absorbed resolve to themselves.
func (e *Engine) Resolve(id construct.ID) construct.ID {
	for {
		next, ok := e.forward[id]
		if !ok {
			return id
		}
		id = next
	}
}

type taskKind uint8

const (
	taskMerge taskKind = iota
	taskTopic
	taskAssociation
)

type task struct {
	kind taskKind
	a, b construct.ID
}

func mergeTask(target, other construct.ID) task {
	return task{kind: taskMerge, a: target, b: other}
}

func topicTask(topic construct.ID) task { return task{kind: taskTopic, a: topic} }

func associationTask(assoc construct.ID) task { return task{kind: taskAssociation, a: assoc} }

// run drains the worklist. Tasks returned by a step run before anything
// that was already queued, in the order they were returned.
func (e *Engine) run(ctx context.Context, pending []task) error {
	stack := make([]task, 0, len(pending))
	for i := len(pending) - 1; i >= 0; i-- {
		stack = append(stack, pending[i])
	}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var next []task
		var err error
		switch t.kind {
		case taskMerge:
			next, err = e.merge(ctx, t.a, t.b)
		case taskTopic:
			next, err = e.checkTopic(ctx, t.a)
		case taskAssociation:
			next, err = e.checkAssociation(ctx, t.a)
		}
		if err != nil {
			return err
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return nil
}

// MergeTopics absorbs other into target and collapses every duplicate the
// merge exposes, merging reifiers of collapsed duplicates as needed. It
// returns the surviving topic.
//
// When both topics reify different constructs the merge is refused with a
// *construct.ReificationConflictError before anything changes.
func (e *Engine) MergeTopics(ctx context.Context, target, other construct.ID) (construct.ID, error) {
	target, other = e.Resolve(target), e.Resolve(other)
	for _, id := range []construct.ID{target, other} {
		if !e.stores.Identity.IsKind(id, construct.KindTopic) {
			return construct.NoID, construct.Unknown("topic", id)
		}
	}
	if target == other {
		return target, nil
	}
	if err := e.stores.Reification.CheckReplace(other, target); err != nil {
		return construct.NoID, fmt.Errorf("cannot merge topic %s into %s: %w", other, target, err)
	}

	ctx, logger := ctxlog.With(ctx, "target", target, "other", other)
	logger.Debug("Merging topics.")
	before := e.stats
	if err := e.run(ctx, []task{mergeTask(target, other)}); err != nil {
		return construct.NoID, fmt.Errorf("failed to merge topic %s into %s: %w", other, target, err)
	}
	logger.Info("Topics merged.",
		"cascaded_merges", e.stats.Merges-before.Merges-1,
		"duplicates_collapsed", e.stats.Collapsed-before.Collapsed,
	)
	return target, nil
}

// Settle collapses duplicates around the given constructs after a direct
// mutation changed one of their keys. Topics are checked for duplicate
// characteristics; characteristics check their topic; roles and
// associations check the association.
func (e *Engine) Settle(ctx context.Context, refs ...construct.Ref) error {
	var pending []task
	for _, ref := range refs {
		if t, ok := e.taskFor(ref); ok {
			pending = append(pending, t)
		}
	}
	before := e.stats.Collapsed
	if err := e.run(ctx, pending); err != nil {
		return err
	}
	if n := e.stats.Collapsed - before; n > 0 {
		ctxlog.FromContext(ctx).Debug("Collapsed duplicates.", "count", n)
	}
	return nil
}

func (e *Engine) taskFor(ref construct.Ref) (task, bool) {
	switch ref.Kind {
	case construct.KindTopic:
		return topicTask(ref.ID), true
	case construct.KindName, construct.KindOccurrence, construct.KindVariant:
		if topic, ok := e.stores.OwnerTopic(ref); ok {
			return topicTask(topic), true
		}
	case construct.KindAssociation:
		return associationTask(ref.ID), true
	case construct.KindRole:
		if assoc, ok := e.stores.Associations.Association(ref.ID); ok {
			return associationTask(assoc), true
		}
	case construct.KindTopicMap, construct.KindInvalid:
	}
	return task{}, false
}
