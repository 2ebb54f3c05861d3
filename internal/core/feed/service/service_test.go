package feedapp

import (
	"context"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/errorx"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) *FeedService {
	return NewFeedService(
		database.NewPostRepositoryDatabase(db),
		database.NewGroupRepositoryDatabase(db),
		database.NewUserRepositoryDatabase(db),
		database.NewFollowerRepositoryDatabase(db),
		10,
	)
}

func TestIndexPaginates(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	posts := testutil.CreatePosts(t, db, author, nil, 13)

	first, err := svc.Index(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Posts, 10)
	assert.Equal(t, 2, first.NumPages)
	assert.EqualValues(t, 13, first.Count)
	assert.Equal(t, posts[12].ID, first.Posts[0].ID)
	assert.Equal(t, "author", first.Posts[0].User.Username)

	second, err := svc.Index(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Posts, 3)
	assert.Equal(t, posts[0].ID, second.Posts[2].ID)

	clamped, err := svc.Index(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Number)
	assert.Len(t, clamped.Posts, 3)
}

func TestIndexEmpty(t *testing.T) {
	svc := newService(testutil.NewDB(t))

	pp, err := svc.Index(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, pp.Posts)
	assert.Equal(t, 1, pp.NumPages)
}

func TestGroupFeed(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	cats := testutil.CreateGroup(t, db, "cats")
	testutil.CreateGroup(t, db, "dogs")
	testutil.CreatePosts(t, db, author, cats, 2)
	testutil.CreatePosts(t, db, author, nil, 1)

	g, pp, err := svc.GroupFeed(ctx, "cats", 1)
	require.NoError(t, err)
	assert.Equal(t, cats.ID, g.ID)
	assert.Len(t, pp.Posts, 2)
	for _, p := range pp.Posts {
		require.NotNil(t, p.Group)
		assert.Equal(t, "cats", p.Group.Slug)
	}

	_, pp, err = svc.GroupFeed(ctx, "dogs", 1)
	require.NoError(t, err)
	assert.Empty(t, pp.Posts)

	_, _, err = svc.GroupFeed(ctx, "birds", 1)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestProfileFeed(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	fan := testutil.CreateUser(t, db, "fan")
	testutil.CreatePosts(t, db, author, nil, 3)
	testutil.CreatePosts(t, db, fan, nil, 1)
	testutil.CreateFollow(t, db, fan, author)

	profile, err := svc.ProfileFeed(ctx, testutil.Viewer(fan), "author", 1)
	require.NoError(t, err)
	assert.True(t, profile.Following)
	assert.EqualValues(t, 3, profile.PostCount)
	assert.EqualValues(t, 1, profile.Followers)
	assert.Len(t, profile.Page.Posts, 3)

	profile, err = svc.ProfileFeed(ctx, nil, "author", 1)
	require.NoError(t, err)
	assert.False(t, profile.Following)

	profile, err = svc.ProfileFeed(ctx, testutil.Viewer(author), "author", 1)
	require.NoError(t, err)
	assert.False(t, profile.Following)

	_, err = svc.ProfileFeed(ctx, nil, "ghost", 1)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestFollowFeed(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author")
	stranger := testutil.CreateUser(t, db, "stranger")
	fan := testutil.CreateUser(t, db, "fan")
	loner := testutil.CreateUser(t, db, "loner")
	testutil.CreateFollow(t, db, fan, author)

	testutil.CreatePosts(t, db, author, nil, 2)
	testutil.CreatePosts(t, db, stranger, nil, 2)

	pp, err := svc.FollowFeed(ctx, testutil.Viewer(fan), 1)
	require.NoError(t, err)
	require.Len(t, pp.Posts, 2)
	for _, p := range pp.Posts {
		assert.Equal(t, author.ID, p.UserID)
	}
	assert.True(t, pp.Posts[0].CreatedAt.After(pp.Posts[1].CreatedAt))

	testutil.CreatePost(t, db, author, nil, "fresh", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	pp, err = svc.FollowFeed(ctx, testutil.Viewer(fan), 1)
	require.NoError(t, err)
	assert.Len(t, pp.Posts, 3)
	assert.Equal(t, "fresh", pp.Posts[0].Text)

	pp, err = svc.FollowFeed(ctx, testutil.Viewer(loner), 1)
	require.NoError(t, err)
	assert.Empty(t, pp.Posts)

	_, err = svc.FollowFeed(ctx, nil, 1)
	assert.ErrorIs(t, err, errorx.ErrUnauthenticated)
}
