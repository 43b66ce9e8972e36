package topicmap

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveTopic_InUse(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)
	_, err := tm.CreateAssociation(ctx, c.memberOf, nil, RoleSpec{Type: c.member, Player: c.alice})
	require.NoError(t, err)

	// Act
	err = tm.RemoveTopic(ctx, c.alice)

	// Assert
	assert.True(t, errors.Is(err, construct.ErrTopicInUse))
	_, ok := tm.Kind(c.alice)
	assert.True(t, ok)
}

func TestRemoveTopicCascade(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, rec := newMap(t)
	c := newCast(t, tm)
	assoc, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
		RoleSpec{Type: c.group, Player: c.band},
	)
	require.NoError(t, err)
	_, err = tm.CreateName(ctx, c.alice, construct.NoID, "Alice")
	require.NoError(t, err)
	_, err = tm.AddItemIdentifier(ctx, construct.AssociationRef(assoc), construct.MustLocator("urn:assoc"))
	require.NoError(t, err)

	// Act
	err = tm.RemoveTopicCascade(ctx, c.alice)

	// Assert
	require.NoError(t, err)
	_, ok := tm.Kind(c.alice)
	assert.False(t, ok)
	_, ok = tm.TopicBySubjectIdentifier(construct.MustLocator("urn:alice"))
	assert.False(t, ok)
	assert.Len(t, tm.Roles(assoc), 1)
	assert.Equal(t, 1, rec.Count(event.TopicRemoved))
	assert.Equal(t, 1, rec.Count(event.NameRemoved))
}

func TestRemove_Constructs(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	topic := mustTopic(t, tm, "urn:t")
	sort := mustTopic(t, tm, "urn:sort")
	name, err := tm.CreateName(ctx, topic, construct.NoID, "Berlin")
	require.NoError(t, err)
	variant, err := tm.CreateVariant(ctx, name, "berlin", "", sort)
	require.NoError(t, err)
	_, err = tm.AddItemIdentifier(ctx, construct.VariantRef(variant), construct.MustLocator("urn:v"))
	require.NoError(t, err)

	// Act
	err = tm.Remove(ctx, construct.NameRef(name))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, tm.Names(topic))
	_, ok := tm.Resolve(construct.MustLocator("urn:v"))
	assert.False(t, ok, "variant identifiers go with the name")
	err = tm.Remove(ctx, construct.NameRef(name))
	assert.True(t, errors.Is(err, construct.ErrUnsupported))
	err = tm.Remove(ctx, tm.Ref())
	assert.True(t, errors.Is(err, construct.ErrUnsupported))
}

func TestRemoveItemIdentifier(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	topic, err := tm.CreateTopicByItemIdentifier(ctx, construct.MustLocator("urn:x"))
	require.NoError(t, err)

	removed, err := tm.RemoveItemIdentifier(ctx, construct.TopicRef(topic), construct.MustLocator("urn:x"))
	require.NoError(t, err)
	again, err := tm.RemoveItemIdentifier(ctx, construct.TopicRef(topic), construct.MustLocator("urn:x"))
	require.NoError(t, err)

	assert.True(t, removed)
	assert.False(t, again)
	_, ok := tm.Resolve(construct.MustLocator("urn:x"))
	assert.False(t, ok)
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	hub := mustTopic(t, tm, "urn:hub")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			topic, err := tm.CreateTopic(ctx)
			assert.NoError(t, err)
			_, err = tm.AddSubjectIdentifier(ctx, topic, construct.MustLocator("urn:hub"))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_ = tm.Names(hub)
			_, _ = tm.Resolve(construct.MustLocator("urn:hub"))
		}()
	}
	wg.Wait()

	assert.Equal(t, []construct.ID{hub}, tm.Topics())
	assert.Equal(t, 8, tm.Stats().Merges)
}
