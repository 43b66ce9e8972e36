package characteristicstore

import (
	"errors"
	"regexp"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRead(t *testing.T) {
	s := New()
	topic, name, occ, variant := construct.NewID(), construct.NewID(), construct.NewID(), construct.NewID()

	require.NoError(t, s.AddName(topic, name, "Berlin"))
	require.NoError(t, s.AddOccurrence(topic, occ, "3600000", construct.DatatypeInteger))
	require.NoError(t, s.AddVariant(name, variant, "berlin", ""))

	assert.Equal(t, []construct.ID{name}, s.Names(topic))
	assert.Equal(t, []construct.ID{occ}, s.Occurrences(topic))
	assert.Equal(t, []construct.ID{variant}, s.Variants(name))

	parent, ok := s.Parent(variant)
	require.True(t, ok)
	assert.Equal(t, name, parent)

	v, ok := s.Value(occ)
	require.True(t, ok)
	assert.Equal(t, "3600000", v)
	assert.Equal(t, construct.DatatypeInteger, s.Datatype(occ))
	assert.Equal(t, construct.DatatypeString, s.Datatype(variant), "unset datatype defaults to string")
	assert.Equal(t, construct.DatatypeString, s.Datatype(name))
}

func TestAddVariant_RequiresName(t *testing.T) {
	s := New()
	err := s.AddVariant(construct.NewID(), construct.NewID(), "x", "")
	assert.True(t, errors.Is(err, construct.ErrUnsupported))
}

func TestSetValue_UpdatesIndexKeepsDatatype(t *testing.T) {
	s := New()
	topic, occ := construct.NewID(), construct.NewID()
	require.NoError(t, s.AddOccurrence(topic, occ, "old", construct.DatatypeAnyURI))

	old, err := s.SetValue(occ, "new")
	require.NoError(t, err)
	assert.Equal(t, "old", old)
	assert.Empty(t, s.ByValue("old"))
	assert.Equal(t, []construct.Ref{construct.OccurrenceRef(occ)}, s.ByValue("new"))
	assert.Equal(t, construct.DatatypeAnyURI, s.Datatype(occ))
}

func TestSetDatatype(t *testing.T) {
	s := New()
	topic, occ, name := construct.NewID(), construct.NewID(), construct.NewID()
	require.NoError(t, s.AddOccurrence(topic, occ, "1", ""))
	require.NoError(t, s.AddName(topic, name, "n"))

	old, err := s.SetDatatype(occ, construct.DatatypeInteger)
	require.NoError(t, err)
	assert.Equal(t, construct.DatatypeString, old)
	assert.Equal(t, []construct.Ref{construct.OccurrenceRef(occ)}, s.ByDatatype(construct.DatatypeInteger))
	assert.Empty(t, s.ByDatatype(construct.DatatypeString))

	_, err = s.SetDatatype(name, construct.DatatypeInteger)
	assert.True(t, errors.Is(err, construct.ErrUnsupported))
}

func TestByPattern(t *testing.T) {
	s := New()
	topic := construct.NewID()
	n1, n2, n3 := construct.NewID(), construct.NewID(), construct.NewID()
	require.NoError(t, s.AddName(topic, n1, "Berlin"))
	require.NoError(t, s.AddName(topic, n2, "Bern"))
	require.NoError(t, s.AddName(topic, n3, "Paris"))

	got := s.ByPattern(regexp.MustCompile(`^Ber`))
	assert.Equal(t, []construct.Ref{construct.NameRef(n1), construct.NameRef(n2)}, got)
}

func TestRemove_DropsFromAllIndices(t *testing.T) {
	s := New()
	topic, name, variant, occ := construct.NewID(), construct.NewID(), construct.NewID(), construct.NewID()
	require.NoError(t, s.AddName(topic, name, "v"))
	require.NoError(t, s.AddVariant(name, variant, "v", construct.DatatypeString))
	require.NoError(t, s.AddOccurrence(topic, occ, "v", construct.DatatypeString))

	assert.True(t, errors.Is(s.RemoveName(name), construct.ErrUnsupported), "variants must go first")

	require.NoError(t, s.RemoveVariant(variant))
	require.NoError(t, s.RemoveName(name))
	require.NoError(t, s.RemoveOccurrence(occ))

	assert.Empty(t, s.ByValue("v"))
	assert.Empty(t, s.ByDatatype(construct.DatatypeString))
	assert.Empty(t, s.Names(topic))
	assert.False(t, s.HasCharacteristics(topic))
	_, ok := s.Parent(occ)
	assert.False(t, ok)
}

func TestReplace(t *testing.T) {
	s := New()
	keep, gone := construct.NewID(), construct.NewID()
	n1, n2, occ := construct.NewID(), construct.NewID(), construct.NewID()
	require.NoError(t, s.AddName(keep, n1, "a"))
	require.NoError(t, s.AddName(gone, n2, "b"))
	require.NoError(t, s.AddOccurrence(gone, occ, "c", ""))

	moved := s.Replace(gone, keep)
	assert.Len(t, moved, 2)
	assert.Equal(t, []construct.ID{n1, n2}, s.Names(keep))
	assert.Equal(t, []construct.ID{occ}, s.Occurrences(keep))
	assert.False(t, s.HasCharacteristics(gone))
	p, _ := s.Parent(occ)
	assert.Equal(t, keep, p)
}

func TestMoveVariant(t *testing.T) {
	s := New()
	topic, n1, n2, v := construct.NewID(), construct.NewID(), construct.NewID(), construct.NewID()
	require.NoError(t, s.AddName(topic, n1, "a"))
	require.NoError(t, s.AddName(topic, n2, "a"))
	require.NoError(t, s.AddVariant(n2, v, "x", ""))

	require.NoError(t, s.MoveVariant(v, n1))
	assert.Equal(t, []construct.ID{v}, s.Variants(n1))
	assert.Empty(t, s.Variants(n2))
	require.NoError(t, s.RemoveName(n2))
}
