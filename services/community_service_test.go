package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabyskool/api/model"
)

func TestCreateCommunityMakesOwnerMember(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", model.RoleCreator)

	service := NewCommunityService(db)
	ctx := context.Background()

	community, err := service.CreateCommunity(ctx, owner.ID, "Saby Skool", "saby-skool", "learn together")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, community.OwnerID)

	members, err := service.ListMembers(ctx, community.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, model.MembershipRoleOwner, members[0].Role)
}

func TestJoinIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", model.RoleCreator)
	student := seedUser(t, db, "student@example.com", model.RoleParticipant)

	service := NewCommunityService(db)
	ctx := context.Background()

	community, err := service.CreateCommunity(ctx, owner.ID, "Saby Skool", "saby-skool", "")
	require.NoError(t, err)

	require.NoError(t, service.Join(ctx, student.ID, community.ID))
	require.NoError(t, service.Join(ctx, student.ID, community.ID))

	members, err := service.ListMembers(ctx, community.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
