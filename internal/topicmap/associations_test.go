package topicmap

import (
	"context"
	"testing"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cast struct {
	memberOf, member, group construct.ID
	alice, bob, band        construct.ID
}

func newCast(t *testing.T, tm *TopicMap) cast {
	t.Helper()
	return cast{
		memberOf: mustTopic(t, tm, "urn:member-of"),
		member:   mustTopic(t, tm, "urn:member"),
		group:    mustTopic(t, tm, "urn:group"),
		alice:    mustTopic(t, tm, "urn:alice"),
		bob:      mustTopic(t, tm, "urn:bob"),
		band:     mustTopic(t, tm, "urn:band"),
	}
}

func TestCreateAssociation_ReturnsExisting(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)

	// Act
	first, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
		RoleSpec{Type: c.group, Player: c.band},
		RoleSpec{Type: c.member, Player: c.alice},
	)
	require.NoError(t, err)
	second, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.group, Player: c.band},
		RoleSpec{Type: c.member, Player: c.alice},
	)
	require.NoError(t, err)
	scoped, err := tm.CreateAssociation(ctx, c.memberOf, []construct.ID{c.bob},
		RoleSpec{Type: c.group, Player: c.band},
		RoleSpec{Type: c.member, Player: c.alice},
	)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, scoped)
	assert.Len(t, tm.Roles(first), 2, "repeated role is kept once")
	assert.Len(t, tm.RolesPlayed(c.alice), 2)
}

func TestCreateRole_CollapsesIntoEqualAssociation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)
	full, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
		RoleSpec{Type: c.group, Player: c.band},
	)
	require.NoError(t, err)
	partial, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
	)
	require.NoError(t, err)

	// Act
	role, err := tm.CreateRole(ctx, partial, c.group, c.band)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []construct.ID{full}, tm.Associations())
	assert.Equal(t, full, tm.Current(partial))
	assert.Equal(t, tm.RolesPlayed(c.band), []construct.ID{role})
	parent, ok := tm.Parent(role)
	require.True(t, ok)
	assert.Equal(t, full, parent)
	assert.Equal(t, 1, tm.Stats().Collapsed)
}

func TestCreateRole_ReturnsExistingRole(t *testing.T) {
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)
	assoc, err := tm.CreateAssociation(ctx, c.memberOf, nil, RoleSpec{Type: c.member, Player: c.alice})
	require.NoError(t, err)

	role, err := tm.CreateRole(ctx, assoc, c.member, c.alice)

	require.NoError(t, err)
	assert.Equal(t, tm.Roles(assoc), []construct.ID{role})
}

func TestSetPlayer_CollapsesDuplicateRole(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)
	assoc, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
		RoleSpec{Type: c.member, Player: c.bob},
	)
	require.NoError(t, err)
	bobRole := tm.RolesPlayed(c.bob)[0]

	// Act
	err = tm.SetPlayer(ctx, bobRole, c.alice)

	// Assert
	require.NoError(t, err)
	assert.Len(t, tm.Roles(assoc), 1)
	assert.Empty(t, tm.RolesPlayed(c.bob))
	player, ok := tm.Player(tm.Current(bobRole))
	require.True(t, ok)
	assert.Equal(t, c.alice, player)
}

func TestMergingPlayers_CollapsesAssociations(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tm, _ := newMap(t)
	c := newCast(t, tm)
	withAlice, err := tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.alice},
		RoleSpec{Type: c.group, Player: c.band},
	)
	require.NoError(t, err)
	_, err = tm.CreateAssociation(ctx, c.memberOf, nil,
		RoleSpec{Type: c.member, Player: c.bob},
		RoleSpec{Type: c.group, Player: c.band},
	)
	require.NoError(t, err)

	// Act
	survivor, err := tm.MergeTopics(ctx, c.alice, c.bob)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, c.alice, survivor)
	assert.Equal(t, []construct.ID{withAlice}, tm.Associations())
	assert.Len(t, tm.RolesPlayed(c.band), 1)
	assert.Len(t, tm.RolesPlayed(c.alice), 1)
}
