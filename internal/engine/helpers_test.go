package engine

import (
	"context"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/stretchr/testify/require"
)

// world builds topic map content straight into the stores, bypassing the
// duplicate suppression of the public API so tests can set up duplicates.
type world struct {
	t   *testing.T
	ctx context.Context
	s   *Stores
	e   *Engine
	rec *event.Recorder
}

func newWorld(t *testing.T) *world {
	t.Helper()
	rec := &event.Recorder{}
	s := NewStores()
	return &world{t: t, ctx: context.Background(), s: s, e: New(s, rec), rec: rec}
}

func (w *world) topic(sids ...string) construct.ID {
	w.t.Helper()
	id := construct.NewID()
	require.NoError(w.t, w.s.Identity.RegisterID(construct.TopicRef(id)))
	for _, sid := range sids {
		require.NoError(w.t, w.s.Identity.AddSubjectIdentifier(id, construct.MustLocator(sid)))
	}
	return id
}

func (w *world) iid(id construct.ID, loc string) {
	w.t.Helper()
	require.NoError(w.t, w.s.Identity.AddItemIdentifier(id, construct.MustLocator(loc)))
}

func (w *world) name(topic, typ construct.ID, value string, themes ...construct.ID) construct.ID {
	w.t.Helper()
	id := construct.NewID()
	ref := construct.NameRef(id)
	require.NoError(w.t, w.s.Identity.RegisterID(ref))
	require.NoError(w.t, w.s.Characteristics.AddName(topic, id, value))
	_, err := w.s.Typed.SetType(ref, typ)
	require.NoError(w.t, err)
	_, err = w.s.Scopes.SetScope(ref, w.s.Scopes.InternScope(themes...))
	require.NoError(w.t, err)
	return id
}

func (w *world) occurrence(topic, typ construct.ID, value string, themes ...construct.ID) construct.ID {
	w.t.Helper()
	id := construct.NewID()
	ref := construct.OccurrenceRef(id)
	require.NoError(w.t, w.s.Identity.RegisterID(ref))
	require.NoError(w.t, w.s.Characteristics.AddOccurrence(topic, id, value, construct.DatatypeString))
	_, err := w.s.Typed.SetType(ref, typ)
	require.NoError(w.t, err)
	_, err = w.s.Scopes.SetScope(ref, w.s.Scopes.InternScope(themes...))
	require.NoError(w.t, err)
	return id
}

func (w *world) variant(name construct.ID, value string, themes ...construct.ID) construct.ID {
	w.t.Helper()
	id := construct.NewID()
	require.NoError(w.t, w.s.Identity.RegisterID(construct.VariantRef(id)))
	require.NoError(w.t, w.s.Characteristics.AddVariant(name, id, value, construct.DatatypeString))
	_, err := w.s.Scopes.SetVariantScope(id, name, w.s.Scopes.InternScope(themes...))
	require.NoError(w.t, err)
	return id
}

func (w *world) association(typ construct.ID, roles ...RoleSpec) (construct.ID, []construct.ID) {
	w.t.Helper()
	id := construct.NewID()
	ref := construct.AssociationRef(id)
	require.NoError(w.t, w.s.Identity.RegisterID(ref))
	require.NoError(w.t, w.s.Associations.AddAssociation(id))
	_, err := w.s.Typed.SetType(ref, typ)
	require.NoError(w.t, err)
	_, err = w.s.Scopes.SetScope(ref, nil)
	require.NoError(w.t, err)

	roleIDs := make([]construct.ID, len(roles))
	for i, spec := range roles {
		rid := construct.NewID()
		require.NoError(w.t, w.s.Identity.RegisterID(construct.RoleRef(rid)))
		require.NoError(w.t, w.s.Associations.AddRole(id, rid, spec.Player))
		_, err := w.s.Typed.SetType(construct.RoleRef(rid), spec.Type)
		require.NoError(w.t, err)
		roleIDs[i] = rid
	}
	return id, roleIDs
}

func (w *world) reify(ref construct.Ref, reifier construct.ID) {
	w.t.Helper()
	_, err := w.s.Reification.SetReifier(ref, reifier)
	require.NoError(w.t, err)
}

func (w *world) exists(id construct.ID) bool {
	_, ok := w.s.Identity.ByID(id)
	return ok
}
