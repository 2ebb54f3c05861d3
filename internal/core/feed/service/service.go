package feedapp

import (
	"context"
	"fmt"

	"yatube/internal/core/feed"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/pagination"
	userEntity "yatube/internal/core/user"
	"yatube/internal/errorx"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// FeedService answers the read-only post listings. Nothing here is
// precomputed; every call queries the store.
type FeedService struct {
	PostRepository     postPort.PostRepository
	GroupRepository    groupPort.GroupRepository
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	pageSize           int
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	pageSize int,
) *FeedService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &FeedService{
		PostRepository:     postRepo,
		GroupRepository:    groupRepo,
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
		pageSize:           pageSize,
	}
}

func (s *FeedService) PageSize() int {
	return s.pageSize
}

// Index lists every post.
func (s *FeedService) Index(ctx context.Context, page int) (*feed.PostPage, error) {
	return s.list(ctx, postPort.Filter{}, page)
}

// GroupFeed lists the posts of the group with the given slug.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (*groupEntity.Group, *feed.PostPage, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	groupID := g.ID
	pp, err := s.list(ctx, postPort.Filter{GroupID: &groupID}, page)
	if err != nil {
		return nil, nil, err
	}
	return g, pp, nil
}

// ProfileFeed lists the author's posts along with the viewer's relation to them.
func (s *FeedService) ProfileFeed(ctx context.Context, viewer *userEntity.Viewer, username string, page int) (*feed.Profile, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	authorID := author.ID
	pp, err := s.list(ctx, postPort.Filter{AuthorID: &authorID}, page)
	if err != nil {
		return nil, err
	}

	profile := &feed.Profile{
		Author:    author,
		PostCount: pp.Count,
		Page:      pp,
	}

	if viewer.Authenticated() && viewer.ID != author.ID {
		profile.Following, err = s.FollowerRepository.IsFollowing(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}
	if profile.Followers, err = s.FollowerRepository.CountFollowers(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if profile.FollowingCount, err = s.FollowerRepository.CountFollowing(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	return profile, nil
}

// FollowFeed lists posts by the authors viewer follows.
func (s *FeedService) FollowFeed(ctx context.Context, viewer *userEntity.Viewer, page int) (*feed.PostPage, error) {
	if !viewer.Authenticated() {
		return nil, errorx.ErrUnauthenticated
	}
	viewerID := viewer.ID
	return s.list(ctx, postPort.Filter{FollowerID: &viewerID}, page)
}

func (s *FeedService) list(ctx context.Context, filter postPort.Filter, number int) (*feed.PostPage, error) {
	count, err := s.PostRepository.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	p := pagination.New(count, number, s.pageSize)
	pp := &feed.PostPage{Page: p}
	if count == 0 {
		return pp, nil
	}

	pp.Posts, err = s.PostRepository.List(ctx, filter, p.Offset(), p.Limit())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return pp, nil
}
