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

func TestCreateName_DefaultType(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")

	first, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin")
	require.NoError(t, err)
	second, err := tm.CreateName(ctx, topic, construct.NoID, "Berlino")
	require.NoError(t, err)

	typ, ok := tm.Type(first)
	require.True(t, ok)
	other, _ := tm.Type(second)
	assert.Equal(t, typ, other)
	got, ok := tm.TopicBySubjectIdentifier(construct.DefaultNameType)
	require.True(t, ok)
	assert.Equal(t, typ, got)
}

func TestCreateName_FailedCallLeavesMapUnchanged(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	a := mustTopic(t, tm, "urn:a")
	topics, events := tm.Count(construct.KindTopic), rec.Len()

	// Act
	_, err := tm.CreateName(ctx, a, construct.NoID, "x", construct.NewID())

	// Assert
	require.Error(t, err)
	assert.Equal(t, topics, tm.Count(construct.KindTopic), "no default name type created")
	assert.Equal(t, events, rec.Len(), "no events emitted")
	_, ok := tm.TopicBySubjectIdentifier(construct.DefaultNameType)
	assert.False(t, ok)
	assert.Empty(t, tm.Names(a))
}

func TestCreate_ReturnsExistingEqualConstruct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	typ := mustTopic(t, tm, "urn:type")
	en := mustTopic(t, tm, "urn:en")
	de := mustTopic(t, tm, "urn:de")

	// Act
	n1, err := tm.CreateName(ctx, topic, typ, "Berlin", en, de)
	require.NoError(t, err)
	n2, err := tm.CreateName(ctx, topic, typ, "Berlin", de, en, de)
	require.NoError(t, err)
	o1, err := tm.CreateOccurrence(ctx, topic, typ, "3", construct.DatatypeInteger)
	require.NoError(t, err)
	o2, err := tm.CreateOccurrence(ctx, topic, typ, "3", construct.DatatypeInteger)
	require.NoError(t, err)
	o3, err := tm.CreateOccurrence(ctx, topic, typ, "3", "")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, n1, n2)
	assert.Equal(t, o1, o2)
	assert.NotEqual(t, o1, o3, "datatype is part of the occurrence key")
	assert.Equal(t, construct.DatatypeString, tm.Datatype(o3))
	assert.Equal(t, 1, rec.Count(event.NameAdded))
	assert.Equal(t, 2, rec.Count(event.OccurrenceAdded))
}

func TestCreateOccurrence_RequiresType(t *testing.T) {
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	_, err := tm.CreateOccurrence(context.Background(), topic, construct.NoID, "x", "")
	assert.True(t, errors.Is(err, construct.ErrModelConstraint))
}

func TestCreateVariant_ScopeRule(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	en := mustTopic(t, tm, "urn:en")
	sort := mustTopic(t, tm, "urn:sort")
	name, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin", en)
	require.NoError(t, err)

	tests := []struct {
		name    string
		themes  []construct.ID
		wantErr bool
	}{
		{name: "no themes", themes: nil, wantErr: true},
		{name: "only name themes", themes: []construct.ID{en}, wantErr: true},
		{name: "adds a theme", themes: []construct.ID{sort}},
		{name: "repeats name theme and adds one", themes: []construct.ID{en, sort}},
	}
	var created []construct.ID
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			v, err := tm.CreateVariant(ctx, name, "berlin", "", tc.themes...)

			// Assert
			if tc.wantErr {
				assert.True(t, errors.Is(err, construct.ErrModelConstraint))
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, []construct.ID{en, sort}, tm.Scope(v))
			created = append(created, v)
		})
	}
	require.Len(t, created, 2)
	assert.Equal(t, created[0], created[1], "equal effective scopes make equal variants")
	assert.Equal(t, []construct.ID{created[0]}, tm.Variants(name))
}

func TestSetValue_CollapsesDuplicate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	keep, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin")
	require.NoError(t, err)
	typo, err := tm.CreateName(ctx, topic, construct.NoID, "Berlim")
	require.NoError(t, err)
	rec.Reset()

	// Act
	err = tm.SetValue(ctx, construct.NameRef(typo), "Berlin")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []construct.ID{keep}, tm.Names(topic))
	assert.Equal(t, keep, tm.Current(typo))
	assert.Equal(t, []event.Kind{event.ValueSet, event.NameRemoved}, rec.Kinds())
}

func TestSetScope_Variant(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	en := mustTopic(t, tm, "urn:en")
	sort := mustTopic(t, tm, "urn:sort")
	name, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin", en)
	require.NoError(t, err)
	v, err := tm.CreateVariant(ctx, name, "berlin", "", sort)
	require.NoError(t, err)

	err = tm.SetScope(ctx, construct.VariantRef(v), en)
	assert.True(t, errors.Is(err, construct.ErrModelConstraint))

	require.NoError(t, tm.SetScope(ctx, construct.NameRef(name)))
	assert.Equal(t, []construct.ID{sort}, tm.Scope(v), "variant scope follows its name")
}

func TestSetDatatype(t *testing.T) {
	ctx := context.Background()
	tm, rec := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	typ := mustTopic(t, tm, "urn:population")
	occ, err := tm.CreateOccurrence(ctx, topic, typ, "3600000", "")
	require.NoError(t, err)
	rec.Reset()

	require.NoError(t, tm.SetDatatype(ctx, construct.OccurrenceRef(occ), construct.DatatypeInteger))
	value, _ := tm.Value(occ)

	assert.Equal(t, construct.DatatypeInteger, tm.Datatype(occ))
	assert.Equal(t, "3600000", value)
	assert.Equal(t, []event.Kind{event.DatatypeSet}, rec.Kinds())

	name, err := tm.CreateName(ctx, topic, construct.NoID, "x")
	require.NoError(t, err)
	err = tm.SetDatatype(ctx, construct.NameRef(name), construct.DatatypeInteger)
	assert.True(t, errors.Is(err, construct.ErrUnsupported))
}
