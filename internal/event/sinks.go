package event

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
)

// Recorder keeps every event in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// OnEvent implements Sink.
func (r *Recorder) OnEvent(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset forgets every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Counter counts events without keeping them. It is safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// OnEvent implements Sink.
func (c *Counter) OnEvent(context.Context, Event) {
	c.n.Add(1)
}

// Len returns the number of events seen.
func (c *Counter) Len() int {
	return int(c.n.Load())
}

// LogSink writes every event to the context logger at debug level.
type LogSink struct{}

// OnEvent implements Sink.
func (LogSink) OnEvent(ctx context.Context, e Event) {
	logger := ctxlog.FromContext(ctx)
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	logger.Debug("Construct event",
		"kind", string(e.Kind),
		"construct", e.Construct.String(),
		"new", e.New,
		"old", e.Old,
	)
}
