package construct

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Monotonic(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEqual(t, NoID, a)
	assert.Greater(t, b, a)
}

func TestParseLocator(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{name: "http iri", raw: "http://example.org/berlin"},
		{name: "urn", raw: "urn:a"},
		{name: "fragment", raw: "http://example.org/map#berlin"},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - relative", raw: "berlin", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseLocator(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidLocator))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.raw, loc.String())
		})
	}
}

func TestLocator_Resolve(t *testing.T) {
	base := MustLocator("http://example.org/maps/cities")

	loc, err := base.Resolve("#berlin")
	require.NoError(t, err)
	assert.Equal(t, Locator("http://example.org/maps/cities#berlin"), loc)

	loc, err = base.Resolve("urn:x")
	require.NoError(t, err)
	assert.Equal(t, Locator("urn:x"), loc)
}

func TestKind_Predicates(t *testing.T) {
	for _, k := range Kinds {
		if k == KindTopic {
			assert.False(t, k.IsReifiable())
			assert.False(t, k.IsTyped())
			continue
		}
		assert.True(t, k.IsReifiable(), k.String())
	}
	assert.True(t, KindVariant.IsScoped())
	assert.False(t, KindVariant.IsTyped())
	assert.False(t, KindRole.IsScoped())
	assert.True(t, KindOccurrence.HasDatatype())
	assert.False(t, KindName.HasDatatype())
}

func TestIDSet_Sorted(t *testing.T) {
	s := NewIDSet(5, 1, 3)
	s.Add(2)
	s.Remove(3)
	assert.Equal(t, []ID{1, 2, 5}, s.Sorted())
	assert.True(t, s.Has(5))
	assert.False(t, s.Has(3))
}

func TestReificationConflictError_Is(t *testing.T) {
	err := error(&ReificationConflictError{Reifier: 1, Existing: NameRef(2), Requested: NameRef(3)})
	assert.True(t, errors.Is(err, ErrReificationConflict))
	assert.Contains(t, err.Error(), "name#2")
}
