package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studylink/api-go/models"
)

func TestCanView(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)

	owner := createUser(t, db, "owner")
	follower := createUser(t, db, "follower")
	stranger := createUser(t, db, "stranger")
	pending := createUser(t, db, "pendingfan")
	acceptFollow(t, db, follower, owner)

	edge := models.FollowEdge{FollowerID: pending.ID, FollowedID: owner.ID, Status: models.FollowPending}
	require.NoError(t, db.Create(&edge).Error)

	publicPost := createPost(t, db, owner, models.VisibilityPublic)
	followPost := createPost(t, db, owner, models.VisibilityFollow)
	privatePost := createPost(t, db, owner, models.VisibilityPrivate)

	anon := (*Viewer)(nil)
	asOwner := &Viewer{ID: owner.ID}
	asFollower := &Viewer{ID: follower.ID}
	asStranger := &Viewer{ID: stranger.ID}
	asPending := &Viewer{ID: pending.ID}
	asModerator := &Viewer{ID: stranger.ID, Moderator: true}
	_ = asModerator

	cases := []struct {
		name   string
		post   *models.Post
		viewer *Viewer
		want   bool
	}{
		{"public visible to anonymous", publicPost, anon, true},
		{"public visible to stranger", publicPost, asStranger, true},
		{"follow hidden from anonymous", followPost, anon, false},
		{"follow visible to owner", followPost, asOwner, true},
		{"follow visible to accepted follower", followPost, asFollower, true},
		{"follow hidden from stranger", followPost, asStranger, false},
		{"follow hidden from pending follower", followPost, asPending, false},
		{"private visible to owner only", privatePost, asOwner, true},
		{"private hidden from follower", privatePost, asFollower, false},
		{"private hidden from anonymous", privatePost, anon, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CanView(tc.post, tc.viewer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown visibility fails closed", func(t *testing.T) {
		weird := createPost(t, db, owner, "friends-of-friends")
		got, err := svc.CanView(weird, asFollower)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestCanViewHiddenPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)

	owner := createUser(t, db, "owner")
	follower := createUser(t, db, "follower")
	acceptFollow(t, db, follower, owner)

	post := createPost(t, db, owner, models.VisibilityPublic)
	require.NoError(t, db.Model(post).Update("hidden", true).Error)
	post.Hidden = true

	t.Run("hidden from anonymous", func(t *testing.T) {
		got, err := svc.CanView(post, nil)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("hidden from follower regardless of mode", func(t *testing.T) {
		got, err := svc.CanView(post, &Viewer{ID: follower.ID})
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("owner still sees own hidden post", func(t *testing.T) {
		got, err := svc.CanView(post, &Viewer{ID: owner.ID})
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("moderator still sees hidden post", func(t *testing.T) {
		got, err := svc.CanView(post, &Viewer{ID: follower.ID, Moderator: true})
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestAssertCanViewReasons(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)

	owner := createUser(t, db, "owner")
	stranger := createUser(t, db, "stranger")

	followPost := createPost(t, db, owner, models.VisibilityFollow)
	privatePost := createPost(t, db, owner, models.VisibilityPrivate)
	hiddenPost := createPost(t, db, owner, models.VisibilityPublic)
	require.NoError(t, db.Model(hiddenPost).Update("hidden", true).Error)
	hiddenPost.Hidden = true

	cases := []struct {
		name   string
		post   *models.Post
		viewer *Viewer
		reason DenialReason
	}{
		{"anonymous gets not_logged_in", followPost, nil, DenialNotLoggedIn},
		{"non-follower gets follow_required", followPost, &Viewer{ID: stranger.ID}, DenialFollowRequired},
		{"stranger gets owner_only on private", privatePost, &Viewer{ID: stranger.ID}, DenialOwnerOnly},
		{"stranger gets hidden on hidden post", hiddenPost, &Viewer{ID: stranger.ID}, DenialHidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.AssertCanView(tc.post, tc.viewer)
			require.Error(t, err)
			var denied *VisibilityDeniedError
			require.ErrorAs(t, err, &denied)
			assert.Equal(t, tc.reason, denied.Reason)
		})
	}

	t.Run("no error when allowed", func(t *testing.T) {
		assert.NoError(t, svc.AssertCanView(followPost, &Viewer{ID: owner.ID}))
	})
}

func TestFilterVisiblePreservesOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)

	owner := createUser(t, db, "owner")
	stranger := createUser(t, db, "stranger")

	first := createPost(t, db, owner, models.VisibilityPublic)
	createPost(t, db, owner, models.VisibilityPrivate)
	third := createPost(t, db, owner, models.VisibilityPublic)
	createPost(t, db, owner, models.VisibilityFollow)
	fifth := createPost(t, db, owner, models.VisibilityPublic)

	var posts []models.Post
	require.NoError(t, db.Order("id ASC").Find(&posts).Error)
	require.Len(t, posts, 5)

	visible, err := svc.FilterVisible(posts, &Viewer{ID: stranger.ID})
	require.NoError(t, err)

	require.Len(t, visible, 3)
	assert.Equal(t, first.ID, visible[0].ID)
	assert.Equal(t, third.ID, visible[1].ID)
	assert.Equal(t, fifth.ID, visible[2].ID)
}
