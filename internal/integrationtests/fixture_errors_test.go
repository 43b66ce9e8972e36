package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtures_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		hcl     string
		wantIs  error
		wantMsg string
	}{
		{
			name: "reifier reused",
			hcl: `
topic "berlin" {
  name {
    value   = "Berlin"
    reifier = "note"
  }
}
topic "paris" {
  name {
    value   = "Paris"
    reifier = "note"
  }
}
`,
			wantIs:  construct.ErrReificationConflict,
			wantMsg: `topic "paris"`,
		},
		{
			name: "variant scope not wider than the name",
			hcl: `
topic "berlin" {
  name {
    value = "Berlin"
    scope = ["de"]
    variant {
      value = "berlin"
      scope = ["de"]
    }
  }
}
`,
			wantIs:  construct.ErrModelConstraint,
			wantMsg: `topic "berlin"`,
		},
		{
			name: "invalid subject identifier",
			hcl: `
topic "berlin" {
  subject_identifiers = ["not absolute"]
}
`,
			wantIs:  construct.ErrInvalidLocator,
			wantMsg: "failed to load fixtures",
		},
		{
			name: "unknown attribute",
			hcl: `
topic "berlin" {
  colour = "red"
}
`,
			wantMsg: "failed to decode fixture file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.RunFixtureTest(t, map[string]string{"main.hcl": tc.hcl}, nil)

			require.Error(t, result.Err)
			if tc.wantIs != nil {
				assert.True(t, errors.Is(result.Err, tc.wantIs), "got %v", result.Err)
			}
			assert.Contains(t, result.Err.Error(), tc.wantMsg)
		})
	}
}
