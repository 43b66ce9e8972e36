package topicmap

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/specialistvlad/topicmapgo/internal/scopestore"
)

// DefaultItemIdentifierPrefix prefixes generated item identifiers.
const DefaultItemIdentifierPrefix = "urn:uuid:"

// Config tunes a TopicMap.
type Config struct {
	// Sink receives every change. Nil discards events.
	Sink event.Sink
	// AutoItemIdentifiers gives topics created without any identifier a
	// generated item identifier.
	AutoItemIdentifiers bool
	// ItemIdentifierPrefix prefixes generated item identifiers. Empty means
	// DefaultItemIdentifierPrefix.
	ItemIdentifierPrefix string
}

// ValidateItemIdentifierPrefix checks that prefix followed by a generated
// UUID is an absolute IRI.
func ValidateItemIdentifierPrefix(prefix string) error {
	if _, err := construct.ParseLocator(prefix + uuid.Nil.String()); err != nil {
		return fmt.Errorf("item identifier prefix %q: %w", prefix, err)
	}
	return nil
}

// Validate checks that cfg is usable. An empty prefix stands for
// DefaultItemIdentifierPrefix.
func (c Config) Validate() error {
	if c.ItemIdentifierPrefix == "" {
		return nil
	}
	return ValidateItemIdentifierPrefix(c.ItemIdentifierPrefix)
}

// TopicMap is one in-memory topic map.
type TopicMap struct {
	mu     sync.RWMutex
	cfg    Config
	stores *engine.Stores
	engine *engine.Engine
}

// New creates an empty topic map. It panics when cfg does not pass
// Validate; callers holding user input validate first.
func New(cfg Config) *TopicMap {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("invalid topic map config: %w", err))
	}
	if cfg.ItemIdentifierPrefix == "" {
		cfg.ItemIdentifierPrefix = DefaultItemIdentifierPrefix
	}
	stores := engine.NewStores()
	return &TopicMap{
		cfg:    cfg,
		stores: stores,
		engine: engine.New(stores, cfg.Sink),
	}
}

// Ref returns the reference of the map itself, which may be reified.
func (tm *TopicMap) Ref() construct.Ref { return tm.stores.MapRef() }

// View runs fn with shared access to the stores. fn must not mutate them
// or call back into tm.
func (tm *TopicMap) View(fn func(*engine.Stores)) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	fn(tm.stores)
}

// Stats returns the merge counters of the map.
func (tm *TopicMap) Stats() engine.Stats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.engine.Stats()
}

// Current returns the handle that now stands for id: id itself, or the
// construct that absorbed it in a merge or collapse.
func (tm *TopicMap) Current(id construct.ID) construct.ID {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.engine.Resolve(id)
}

func (tm *TopicMap) emit(ctx context.Context, kind event.Kind, ref construct.Ref, newValue, oldValue any) {
	tm.engine.Emit(ctx, kind, ref, newValue, oldValue)
}

// lookup resolves id and checks that it is a live construct of kind.
func (tm *TopicMap) lookup(id construct.ID, kind construct.Kind) (construct.ID, error) {
	id = tm.engine.Resolve(id)
	if !tm.stores.Identity.IsKind(id, kind) {
		return construct.NoID, construct.Unknown(kind.String(), id)
	}
	return id, nil
}

func (tm *TopicMap) topic(id construct.ID) (construct.ID, error) {
	return tm.lookup(id, construct.KindTopic)
}

// ref resolves a reference and checks it against the identity registry.
func (tm *TopicMap) ref(ref construct.Ref) (construct.Ref, error) {
	id, err := tm.lookup(ref.ID, ref.Kind)
	if err != nil {
		return construct.Ref{}, err
	}
	return construct.Ref{Kind: ref.Kind, ID: id}, nil
}

// scope interns the canonical scope of themes, which must be topics.
func (tm *TopicMap) scope(themes []construct.ID) (*scopestore.Scope, error) {
	resolved := make([]construct.ID, len(themes))
	for i, theme := range themes {
		t, err := tm.topic(theme)
		if err != nil {
			return nil, fmt.Errorf("invalid theme: %w", err)
		}
		resolved[i] = t
	}
	return tm.stores.Scopes.InternScope(resolved...), nil
}

// register allocates and registers a handle for a new construct.
func (tm *TopicMap) register(kind construct.Kind) (construct.Ref, error) {
	ref := construct.Ref{Kind: kind, ID: construct.NewID()}
	if err := tm.stores.Identity.RegisterID(ref); err != nil {
		return construct.Ref{}, err
	}
	return ref, nil
}
