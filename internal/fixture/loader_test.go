package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = construct.Locator("http://example.org/map")

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustResolve(t *testing.T, tm *topicmap.TopicMap, loc string) construct.ID {
	t.Helper()
	ref, ok := tm.Resolve(construct.MustLocator(loc))
	require.True(t, ok, "nothing at %s", loc)
	require.Equal(t, construct.KindTopic, ref.Kind)
	return ref.ID
}

const berlinFixture = `
topic "berlin" {
  subject_identifiers = ["http://example.org/berlin"]
  types               = ["city"]
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
  occurrence {
    type     = "homepage"
    value    = "https://berlin.de"
    datatype = "http://www.w3.org/2001/XMLSchema#anyURI"
    reifier  = "homepage-note"
  }
}

topic "city" {
  supertypes = ["place"]
}

association "located-in" {
  role "part"  { player = "berlin" }
  role "whole" { player = "si:http://example.org/germany" }
}
`

func TestLoad(t *testing.T) {
	// Arrange
	ctx := context.Background()
	dir := t.TempDir()
	writeFixture(t, dir, "berlin.hcl", berlinFixture)
	tm := topicmap.New(topicmap.Config{})

	// Act
	sum, err := NewLoader(base).Load(ctx, tm, dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Summary{Files: 1, Topics: 2, Associations: 1}, sum)

	berlin := mustResolve(t, tm, "http://example.org/berlin")
	assert.Equal(t, berlin, mustResolve(t, tm, "http://example.org/map#berlin"))
	city := mustResolve(t, tm, "http://example.org/map#city")
	place := mustResolve(t, tm, "http://example.org/map#place")
	assert.Equal(t, []construct.ID{city}, tm.TopicTypes(berlin))
	assert.Equal(t, []construct.ID{place}, tm.Supertypes(city))

	names := tm.Names(berlin)
	require.Len(t, names, 2)
	assert.Len(t, tm.Variants(names[1]), 1)

	occs := tm.Occurrences(berlin)
	require.Len(t, occs, 2)
	assert.Equal(t, construct.DatatypeInteger, tm.Datatype(occs[0]))
	value, _ := tm.Value(occs[0])
	assert.Equal(t, "3600000", value)
	assert.Equal(t, construct.DatatypeAnyURI, tm.Datatype(occs[1]))
	reifier, ok := tm.Reifier(occs[1])
	require.True(t, ok)
	assert.Equal(t, mustResolve(t, tm, "http://example.org/map#homepage-note"), reifier)

	germany := mustResolve(t, tm, "http://example.org/germany")
	assocs := tm.Associations()
	require.Len(t, assocs, 1)
	assert.Len(t, tm.Roles(assocs[0]), 2)
	assert.Len(t, tm.RolesPlayed(germany), 1)
}

func TestLoad_MergesAcrossFiles(t *testing.T) {
	// Arrange
	ctx := context.Background()
	dir := t.TempDir()
	first := writeFixture(t, dir, "a.hcl", `
topic "berlin" {
  subject_identifiers = ["http://example.org/berlin"]
  name { value = "Berlin" }
}
`)
	second := writeFixture(t, dir, "b.hcl", `
base = "http://example.org/other"

topic "hauptstadt" {
  subject_identifiers = ["http://example.org/berlin"]
  name { value = "Berlin" }
  name { value = "Hauptstadt" }
}
`)
	tm := topicmap.New(topicmap.Config{})

	// Act
	sum, err := NewLoader(base).Load(ctx, tm, first, second)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
	berlin := mustResolve(t, tm, "http://example.org/berlin")
	assert.Equal(t, berlin, mustResolve(t, tm, "http://example.org/other#hauptstadt"))
	assert.Equal(t, berlin, mustResolve(t, tm, "http://example.org/map#berlin"))
	assert.Len(t, tm.Names(berlin), 2)
	assert.Equal(t, 1, tm.Stats().Merges)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		is      error
	}{
		{name: "syntax", content: `topic "x" {`, wantErr: "failed to parse fixture file"},
		{name: "missing value", content: `topic "x" { name {} }`, wantErr: "failed to decode fixture file"},
		{name: "relative subject identifier", content: `topic "x" { subject_identifiers = ["berlin"] }`, is: construct.ErrInvalidLocator},
		{name: "bad label", content: `association "a b" {}`, is: construct.ErrInvalidLocator},
		{name: "bad base", content: `base = "relative"`, wantErr: "invalid base"},
		{name: "unknown block", content: `assocation "a" {}`, wantErr: "failed to decode fixture file"},
		{name: "unknown attribute", content: `bsae = "http://example.org/"`, wantErr: "failed to decode fixture file"},
		{name: "variant without new theme", content: `
topic "x" {
  name {
    value = "x"
    scope = ["en"]
    variant {
      value = "x"
      scope = ["en"]
    }
  }
}`, is: construct.ErrModelConstraint},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			path := writeFixture(t, t.TempDir(), "bad.hcl", tc.content)

			// Act
			_, err := NewLoader(base).Load(context.Background(), topicmap.New(topicmap.Config{}), path)

			// Assert
			require.Error(t, err)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
			}
			if tc.is != nil {
				assert.True(t, errors.Is(err, tc.is), "got %v", err)
			}
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader(base).Load(context.Background(), topicmap.New(topicmap.Config{}), filepath.Join(t.TempDir(), "none.hcl"))
	assert.ErrorContains(t, err, "error accessing path")
}
