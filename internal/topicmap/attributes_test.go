package topicmap

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetReifier_OneConstructPerReifier(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	reifier := mustTopic(t, tm, "urn:r")
	name, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin")
	require.NoError(t, err)
	occType := mustTopic(t, tm, "urn:population")
	occ, err := tm.CreateOccurrence(ctx, topic, occType, "3600000", construct.DatatypeInteger)
	require.NoError(t, err)
	require.NoError(t, tm.SetReifier(ctx, construct.NameRef(name), reifier))

	// Act
	err = tm.SetReifier(ctx, construct.OccurrenceRef(occ), reifier)

	// Assert
	var conflict *construct.ReificationConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, construct.NameRef(name), conflict.Existing)
	assert.Equal(t, construct.OccurrenceRef(occ), conflict.Requested)
	got, ok := tm.Reifier(name)
	require.True(t, ok)
	assert.Equal(t, reifier, got)
	_, ok = tm.Reifier(occ)
	assert.False(t, ok)
}

func TestSetReifier_TopicMapAndRemoval(t *testing.T) {
	ctx := context.Background()
	tm, rec := newMap(t)
	reifier := mustTopic(t, tm, "urn:r")
	rec.Reset()

	require.NoError(t, tm.SetReifier(ctx, tm.Ref(), reifier))
	reified, ok := tm.Reified(reifier)
	require.True(t, ok)
	assert.Equal(t, tm.Ref(), reified)

	require.NoError(t, tm.SetReifier(ctx, tm.Ref(), construct.NoID))
	_, ok = tm.Reified(reifier)
	assert.False(t, ok)
	assert.Equal(t, []event.Kind{event.ReifierSet, event.ReifierSet}, rec.Kinds())

	err := tm.SetReifier(ctx, construct.TopicRef(reifier), reifier)
	assert.True(t, errors.Is(err, construct.ErrUnsupported), "topics are not reifiable")
}

func TestMergeTopics_ReificationConflictChangesNothing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	first := mustTopic(t, tm, "urn:r1")
	second := mustTopic(t, tm, "urn:r2")
	name, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin")
	require.NoError(t, err)
	require.NoError(t, tm.SetReifier(ctx, construct.NameRef(name), first))
	require.NoError(t, tm.SetReifier(ctx, tm.Ref(), second))
	rec.Reset()

	// Act
	_, err = tm.AddSubjectIdentifier(ctx, second, construct.MustLocator("urn:r1"))

	// Assert
	assert.True(t, errors.Is(err, construct.ErrReificationConflict))
	assert.Zero(t, rec.Len())
	kind, ok := tm.Kind(second)
	require.True(t, ok)
	assert.Equal(t, construct.KindTopic, kind)
	assert.Equal(t, []construct.Locator{construct.MustLocator("urn:r2")}, tm.SubjectIdentifiers(second))
}

func TestMerge_CascadesThroughReifiers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	population := mustTopic(t, tm, "urn:population")
	a := mustTopic(t, tm, "urn:a")
	b, err := tm.CreateTopic(ctx)
	require.NoError(t, err)
	kept, err := tm.CreateOccurrence(ctx, a, population, "3600000", construct.DatatypeInteger)
	require.NoError(t, err)
	dup, err := tm.CreateOccurrence(ctx, b, population, "3600000", construct.DatatypeInteger)
	require.NoError(t, err)
	r1, err := tm.CreateTopic(ctx)
	require.NoError(t, err)
	r2, err := tm.CreateTopic(ctx)
	require.NoError(t, err)
	_, err = tm.CreateName(ctx, r1, construct.NoID, "Census 2020")
	require.NoError(t, err)
	_, err = tm.CreateName(ctx, r2, construct.NoID, "Census 2020")
	require.NoError(t, err)
	require.NoError(t, tm.SetReifier(ctx, construct.OccurrenceRef(kept), r1))
	require.NoError(t, tm.SetReifier(ctx, construct.OccurrenceRef(dup), r2))

	// Act
	_, err = tm.AddSubjectIdentifier(ctx, b, construct.MustLocator("urn:a"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []construct.ID{kept}, tm.Occurrences(a))
	reifier, ok := tm.Reifier(kept)
	require.True(t, ok)
	assert.Equal(t, r1, reifier)
	assert.Equal(t, r1, tm.Current(r2))
	assert.Len(t, tm.Names(r1), 1)
	assert.Equal(t, 2, tm.Stats().Merges)
	assert.Equal(t, 2, tm.Stats().Collapsed)
}

func TestSetType_CollapsesDuplicate(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	homepage := mustTopic(t, tm, "urn:homepage")
	website := mustTopic(t, tm, "urn:website")
	keep, err := tm.CreateOccurrence(ctx, topic, homepage, "http://example.org", construct.DatatypeAnyURI)
	require.NoError(t, err)
	other, err := tm.CreateOccurrence(ctx, topic, website, "http://example.org", construct.DatatypeAnyURI)
	require.NoError(t, err)
	_, err = tm.AddItemIdentifier(ctx, construct.OccurrenceRef(other), construct.MustLocator("urn:occ"))
	require.NoError(t, err)

	require.NoError(t, tm.SetType(ctx, construct.OccurrenceRef(other), homepage))

	assert.Equal(t, []construct.ID{keep}, tm.Occurrences(topic))
	ref, ok := tm.Resolve(construct.MustLocator("urn:occ"))
	require.True(t, ok)
	assert.Equal(t, construct.OccurrenceRef(keep), ref, "item identifiers move to the survivor")
}

func TestSetType_RejectsUntypedKinds(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")

	err := tm.SetType(ctx, construct.TopicRef(topic), topic)
	assert.True(t, errors.Is(err, construct.ErrUnsupported))

	name, err := tm.CreateName(ctx, topic, construct.NoID, "x")
	require.NoError(t, err)
	err = tm.SetType(ctx, construct.NameRef(name), construct.NoID)
	assert.True(t, errors.Is(err, construct.ErrModelConstraint))
}

func TestTopicTypeEdges(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	city := mustTopic(t, tm, "urn:city")
	place := mustTopic(t, tm, "urn:place")
	berlin := mustTopic(t, tm, "urn:berlin")
	rec.Reset()

	// Act
	require.NoError(t, tm.AddTopicType(ctx, berlin, city))
	require.NoError(t, tm.AddTopicType(ctx, berlin, city))
	require.NoError(t, tm.AddSupertype(ctx, city, place))
	require.NoError(t, tm.RemoveTopicType(ctx, berlin, place))

	// Assert
	assert.Equal(t, []construct.ID{city}, tm.TopicTypes(berlin))
	assert.Equal(t, []construct.ID{place}, tm.Supertypes(city))
	assert.Equal(t, []event.Kind{event.TopicTypeAdded, event.SupertypeAdded}, rec.Kinds())

	require.NoError(t, tm.RemoveSupertype(ctx, city, place))
	assert.Empty(t, tm.Supertypes(city))
}
