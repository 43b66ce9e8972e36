package testutil

import (
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
	"github.com/stretchr/testify/require"
)

// RequireTopic resolves loc and fails the test unless it names a topic.
func RequireTopic(t *testing.T, tm *topicmap.TopicMap, loc string) construct.ID {
	t.Helper()
	ref, ok := tm.Resolve(construct.MustLocator(loc))
	require.True(t, ok, "no construct at %s", loc)
	require.Equal(t, construct.KindTopic, ref.Kind, "construct at %s", loc)
	return ref.ID
}

// RequireLabel resolves a fixture label against Base.
func RequireLabel(t *testing.T, tm *topicmap.TopicMap, label string) construct.ID {
	t.Helper()
	return RequireTopic(t, tm, Base+"#"+label)
}

// AssertSameTopic checks that every locator in locs addresses one topic.
func AssertSameTopic(t *testing.T, tm *topicmap.TopicMap, locs ...string) {
	t.Helper()
	if len(locs) == 0 {
		return
	}
	want := RequireTopic(t, tm, locs[0])
	for _, loc := range locs[1:] {
		require.Equal(t, want, RequireTopic(t, tm, loc), "%s and %s are different topics", locs[0], loc)
	}
}
