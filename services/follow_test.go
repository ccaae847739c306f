package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studylink/api-go/models"
)

func TestFollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db, NewNotificationService(db))

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	edge, err := svc.Follow(alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.FollowAccepted, edge.Status, "public member accepts immediately")

	t.Run("creates a notification for the target", func(t *testing.T) {
		notifications, err := NewNotificationService(db).List(bob.ID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationFollow, notifications[0].Type)
		assert.Equal(t, alice.ID, notifications[0].ActorID)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := svc.Follow(alice.ID, "alice")
		assert.ErrorIs(t, err, ErrSelfFollow)
	})

	t.Run("duplicate follow is rejected", func(t *testing.T) {
		_, err := svc.Follow(alice.ID, "bob")
		assert.ErrorIs(t, err, ErrAlreadyFollowing)
	})

	t.Run("unknown nickname", func(t *testing.T) {
		_, err := svc.Follow(alice.ID, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("withdrawn target", func(t *testing.T) {
		gone := createUser(t, db, "gone")
		require.NoError(t, db.Model(gone).Update("status", models.StatusWithdrawn).Error)
		_, err := svc.Follow(alice.ID, "gone")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFollowRequestLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db, NewNotificationService(db))

	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")
	require.NoError(t, db.Model(carol).Update("visibility", models.VisibilityPrivate).Error)

	edge, err := svc.Follow(alice.ID, "carol")
	require.NoError(t, err)
	assert.Equal(t, models.FollowPending, edge.Status, "non-public member gets a request")

	t.Run("pending edge grants nothing until accepted", func(t *testing.T) {
		followers, err := svc.Followers(carol.ID)
		require.NoError(t, err)
		assert.Empty(t, followers)

		pending, err := svc.PendingRequests(carol.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, alice.ID, pending[0].ID)
	})

	t.Run("accept", func(t *testing.T) {
		require.NoError(t, svc.Accept(carol.ID, alice.ID))

		followers, err := svc.Followers(carol.ID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, alice.ID, followers[0].ID)

		following, err := svc.Following(alice.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, carol.ID, following[0].ID)
	})

	t.Run("accept again fails", func(t *testing.T) {
		assert.ErrorIs(t, svc.Accept(carol.ID, alice.ID), ErrNotFound)
	})

	t.Run("reject", func(t *testing.T) {
		dave := createUser(t, db, "dave")
		_, err := svc.Follow(dave.ID, "carol")
		require.NoError(t, err)

		require.NoError(t, svc.Reject(carol.ID, dave.ID))

		edge, err := svc.Edge(dave.ID, carol.ID)
		require.NoError(t, err)
		require.NotNil(t, edge)
		assert.Equal(t, models.FollowRejected, edge.Status)

		followers, err := svc.Followers(carol.ID)
		require.NoError(t, err)
		assert.Len(t, followers, 1, "rejected edge grants nothing")
	})
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db, NewNotificationService(db))

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Follow(alice.ID, "bob")
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(alice.ID, "bob"))

	edge, err := svc.Edge(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, edge)

	t.Run("unfollow without an edge", func(t *testing.T) {
		assert.ErrorIs(t, svc.Unfollow(alice.ID, "bob"), ErrNotFound)
	})

	t.Run("follow again after unfollow", func(t *testing.T) {
		edge, err := svc.Follow(alice.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, models.FollowAccepted, edge.Status)
	})
}
