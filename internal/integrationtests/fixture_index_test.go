package integration_tests

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const citiesHCL = `
topic "berlin" {
  types = ["capital"]
  name { value = "Berlin" }
  name {
    value = "Berlin"
    scope = ["de"]
    variant {
      value = "berlin"
      scope = ["sort"]
    }
  }
  occurrence {
    type  = "population"
    value = 3600000
  }
}

topic "hamburg" {
  types = ["city"]
  name { value = "Hamburg" }
  occurrence {
    type  = "population"
    value = 1900000
  }
  occurrence {
    type  = "area"
    value = 755.2
  }
}

topic "capital" {
  supertypes = ["city"]
}
`

// TestFixtures_Indexes verifies that the index facade answers queries over a
// loaded fixture.
func TestFixtures_Indexes(t *testing.T) {
	// --- Arrange ---
	result := testutil.RunFixtureTest(t, map[string]string{"cities.hcl": citiesHCL}, nil)
	require.NoError(t, result.Err)
	tm := result.App.TopicMap()
	idx := result.App.Index()
	berlin := testutil.RequireLabel(t, tm, "berlin")
	hamburg := testutil.RequireLabel(t, tm, "hamburg")
	city := testutil.RequireLabel(t, tm, "city")
	capital := testutil.RequireLabel(t, tm, "capital")
	de := testutil.RequireLabel(t, tm, "de")
	population := testutil.RequireLabel(t, tm, "population")

	// --- Act & Assert ---
	if diff := cmp.Diff([]construct.ID{berlin, hamburg}, idx.TypeInstance.TopicsTransitive(city)); diff != "" {
		t.Errorf("TopicsTransitive mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]construct.ID{city}, idx.SupertypeSubtype.Supertypes(capital)); diff != "" {
		t.Errorf("Supertypes mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, idx.TypeInstance.Occurrences(population), 2)
	assert.Len(t, idx.Scoped.ByTheme(construct.KindName, de), 1)
	assert.Len(t, idx.Scoped.ByTheme(construct.KindVariant, de), 1, "variants inherit the name scope")
	assert.Len(t, idx.Literal.ByDatatype(construct.KindOccurrence, construct.DatatypeInteger), 2)
	assert.Len(t, idx.Literal.ByDatatype(construct.KindOccurrence, construct.DatatypeDecimal), 1)
	assert.Len(t, idx.Literal.ByPattern(construct.KindName, regexp.MustCompile(`^B`)), 2)
	assert.Len(t, idx.Literal.Variants("berlin"), 1)
}
