package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
	"github.com/stretchr/testify/require"
)

// NewMap creates an empty topic map whose events are recorded.
func NewMap(t *testing.T) (*topicmap.TopicMap, *event.Recorder) {
	t.Helper()
	rec := &event.Recorder{}
	return topicmap.New(topicmap.Config{Sink: rec}), rec
}

// Topic creates or finds the topic with subject identifier sid.
func Topic(t *testing.T, tm *topicmap.TopicMap, sid string) construct.ID {
	t.Helper()
	id, err := tm.CreateTopicBySubjectIdentifier(context.Background(), construct.MustLocator(sid))
	require.NoError(t, err)
	return id
}

// Topics creates or finds one topic per subject identifier.
func Topics(t *testing.T, tm *topicmap.TopicMap, sids ...string) []construct.ID {
	t.Helper()
	out := make([]construct.ID, len(sids))
	for i, sid := range sids {
		out[i] = Topic(t, tm, sid)
	}
	return out
}
