package database_test

import (
	"context"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
	"yatube/internal/errorx"
	postPort "yatube/internal/ports/post"
	"yatube/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryListing(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewPostRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	cats := testutil.CreateGroup(t, db, "cats")

	leoPosts := testutil.CreatePosts(t, db, leo, cats, 3)
	testutil.CreatePosts(t, db, ann, nil, 2)

	t.Run("all posts newest first", func(t *testing.T) {
		count, err := repo.Count(ctx, postPort.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)

		posts, err := repo.List(ctx, postPort.Filter{}, 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 5)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
		}
		assert.NotEmpty(t, posts[0].User.Username)
	})

	t.Run("by group", func(t *testing.T) {
		posts, err := repo.List(ctx, postPort.Filter{GroupID: &cats.ID}, 0, 10)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, leoPosts[2].ID, posts[0].ID)
		require.NotNil(t, posts[0].Group)
		assert.Equal(t, "cats", posts[0].Group.Slug)
	})

	t.Run("by author with offset", func(t *testing.T) {
		posts, err := repo.List(ctx, postPort.Filter{AuthorID: &leo.ID}, 1, 10)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, leoPosts[1].ID, posts[0].ID)
		assert.Equal(t, leoPosts[0].ID, posts[1].ID)
	})

	t.Run("by follower", func(t *testing.T) {
		testutil.CreateFollow(t, db, ann, leo)

		count, err := repo.Count(ctx, postPort.Filter{FollowerID: &ann.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		count, err = repo.Count(ctx, postPort.Filter{FollowerID: &leo.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})
}

func TestPostRepositoryUpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewPostRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	cats := testutil.CreateGroup(t, db, "cats")
	p := testutil.CreatePosts(t, db, leo, cats, 1)[0]

	p.Text = "changed"
	p.GroupID = nil
	p.Image = "posts/x.png"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Text)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, "posts/x.png", got.Image)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestPostRepositoryDeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewPostRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	posts := testutil.CreatePosts(t, db, leo, nil, 2)
	testutil.CreateComment(t, db, leo, posts[0], "first")
	testutil.CreateComment(t, db, leo, posts[0], "second")
	testutil.CreateComment(t, db, leo, posts[1], "other")

	require.NoError(t, repo.Delete(ctx, posts[0].ID))
	assert.EqualValues(t, 1, testutil.Count(t, db, &post.Post{}))
	assert.EqualValues(t, 1, testutil.Count(t, db, &comment.Comment{}))

	_, err := repo.FindByID(ctx, posts[0].ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, posts[0].ID), errorx.ErrNotFound)
}

func TestGroupRepositoryDeleteClearsPosts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewGroupRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	cats := testutil.CreateGroup(t, db, "cats")
	testutil.CreatePosts(t, db, leo, cats, 2)

	found, err := repo.FindBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, cats.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, cats.ID))

	assert.EqualValues(t, 2, testutil.Count(t, db, &post.Post{}))
	var withGroup int64
	require.NoError(t, db.Model(&post.Post{}).Where("group_id IS NOT NULL").Count(&withGroup).Error)
	assert.Zero(t, withGroup)

	_, err = repo.FindBySlug(ctx, "cats")
	assert.ErrorIs(t, err, errorx.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, cats.ID), errorx.ErrNotFound)
}

func TestUserRepositoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewUserRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")

	leoPost := testutil.CreatePosts(t, db, leo, nil, 1)[0]
	annPost := testutil.CreatePosts(t, db, ann, nil, 1)[0]
	testutil.CreateComment(t, db, ann, leoPost, "ann on leo")
	testutil.CreateComment(t, db, leo, annPost, "leo on ann")
	testutil.CreateComment(t, db, ann, annPost, "ann on ann")
	testutil.CreateFollow(t, db, leo, ann)
	testutil.CreateFollow(t, db, ann, leo)

	require.NoError(t, repo.Delete(ctx, leo.ID))

	assert.EqualValues(t, 1, testutil.Count(t, db, &user.User{}))
	assert.EqualValues(t, 1, testutil.Count(t, db, &post.Post{}))
	assert.EqualValues(t, 1, testutil.Count(t, db, &comment.Comment{}))
	assert.EqualValues(t, 0, testutil.Count(t, db, &follower.Follow{}))

	assert.ErrorIs(t, repo.Delete(ctx, leo.ID), errorx.ErrNotFound)
	_, err := repo.FindByUsername(ctx, "leo")
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestFollowerRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewFollowerRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")

	created, err := repo.FollowUser(ctx, &follower.Follow{UserID: ann.ID, AuthorID: leo.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.FollowUser(ctx, &follower.Follow{UserID: ann.ID, AuthorID: leo.ID})
	require.NoError(t, err)
	assert.False(t, created)
	assert.EqualValues(t, 1, testutil.Count(t, db, &follower.Follow{}))

	ok, err := repo.IsFollowing(ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsFollowing(ctx, leo.ID, ann.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	followers, err := repo.CountFollowers(ctx, leo.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)

	following, err := repo.CountFollowing(ctx, ann.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)

	require.NoError(t, repo.UnfollowUser(ctx, ann.ID, leo.ID))
	assert.ErrorIs(t, repo.UnfollowUser(ctx, ann.ID, leo.ID), errorx.ErrNotFound)
	assert.ErrorIs(t, repo.UnfollowUser(ctx, uuid.Must(uuid.NewV4()), leo.ID), errorx.ErrNotFound)
}

func TestCommentRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := database.NewCommentRepositoryDatabase(db)

	leo := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePosts(t, db, leo, nil, 1)[0]

	older := &comment.Comment{PostID: p.ID, UserID: leo.ID, Text: "older", CreatedAt: p.CreatedAt.Add(time.Second)}
	newer := &comment.Comment{PostID: p.ID, UserID: leo.ID, Text: "newer", CreatedAt: p.CreatedAt.Add(2 * time.Second)}
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newer)
	require.NoError(t, err)

	comments, err := repo.ListByPostID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "newer", comments[0].Text)
	assert.Equal(t, "leo", comments[0].User.Username)
}

func TestCreateDuplicateMapsToAlreadyExists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)

	testutil.CreateUser(t, db, "leo")
	_, err := database.NewUserRepositoryDatabase(db).Create(ctx, &user.User{
		Username: "leo",
		Email:    "other@example.com",
		Password: "x",
	})
	assert.ErrorIs(t, err, errorx.ErrAlreadyExists)

	testutil.CreateGroup(t, db, "cats")
	_, err = database.NewGroupRepositoryDatabase(db).Create(ctx, &group.Group{
		Title: "Cats again",
		Slug:  "cats",
	})
	assert.ErrorIs(t, err, errorx.ErrAlreadyExists)
}
